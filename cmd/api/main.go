package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tireshop/internal/config"
	"tireshop/internal/db"
	"tireshop/internal/httpserver"
	"tireshop/internal/notify"
	cartrepo "tireshop/internal/repository/cart"
	orderrepo "tireshop/internal/repository/order"
	productrepo "tireshop/internal/repository/product"
	sessionrepo "tireshop/internal/repository/session"
	catalogsvc "tireshop/internal/service/catalog"
	cartsvc "tireshop/internal/service/cart"
	ordersvc "tireshop/internal/service/order"
	sessionsvc "tireshop/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifier = notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	} else {
		logger.Printf("telegram not configured, order notifications disabled")
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	sessionRepo := sessionrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo, sessionRepo)
	sessionService := sessionsvc.New(sessionRepo, cartRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, notifier, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:   catalogService,
		CartSvc:      cartService,
		SessionSvc:   sessionService,
		OrderSvc:     orderService,
		Notifier:     notifier,
		CORSOrigins:  cfg.CORSOrigins,
		MediaURLHost: cfg.MediaURLHost,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
