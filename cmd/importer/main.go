package main

import (
	"context"
	"flag"
	"log"
	"os"

	"tireshop/internal/config"
	"tireshop/internal/db"
	"tireshop/internal/importer"
	productrepo "tireshop/internal/repository/product"
)

func main() {
	path := flag.String("file", "", "path to the supplier CSV price list")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if *path == "" {
		logger.Fatal("missing required -file flag")
	}

	cfg := config.FromEnv()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	repo := productrepo.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(f, repo)

	imported, skipped, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import: %v", err)
	}
	logger.Printf("imported %d products, skipped %d rows", imported, skipped)
}
