package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tireshop/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads supplier price-list exports and inserts/updates
// products keyed by product code. Rows missing required columns are
// skipped, not fatal.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts products. It returns the number of
// imported rows and the number skipped.
func (i *CSVImporter) Run(ctx context.Context) (imported, skipped int, err error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("read row: %w", err)
		}

		product, ok := rowToProduct(record, index)
		if !ok {
			skipped++
			continue
		}
		if _, err := i.productRepo.Upsert(ctx, product); err != nil {
			return imported, skipped, fmt.Errorf("upsert product code=%d: %w", product.ProductCode, err)
		}
		imported++
	}
	return imported, skipped, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func rowToProduct(record []string, index map[string]int) (domain.Product, bool) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	intField := func(name string) (int, bool) {
		v, err := strconv.Atoi(field(name))
		return v, err == nil
	}

	var p domain.Product
	var ok bool

	p.Name = field("name")
	p.Manufacturer = field("manufacturer")
	p.Season = normalizeSeason(field("season"))
	if p.Name == "" || p.Manufacturer == "" || p.Season == "" {
		return p, false
	}
	if p.ProductCode, ok = intField("product_code"); !ok || p.ProductCode == 0 {
		return p, false
	}
	if p.Width, ok = intField("width"); !ok {
		return p, false
	}
	if p.Profile, ok = intField("profile"); !ok {
		return p, false
	}
	if p.Diameter, ok = intField("diameter"); !ok {
		return p, false
	}
	price, err := strconv.ParseInt(field("price"), 10, 64)
	if err != nil || price < 0 {
		return p, false
	}
	p.Price = price

	// Optional columns.
	p.LoadIndex, _ = intField("load_index")
	p.ManufacturersCode, _ = intField("manufacturers_code")
	p.SpeedIndex = field("speed_index")
	p.Homologation = field("homologation")
	p.TireModel = field("tire_model")
	p.Description = field("description")
	p.Visible = !strings.EqualFold(field("visible"), "false")
	return p, true
}

func normalizeSeason(raw string) string {
	switch strings.ToLower(raw) {
	case domain.SeasonWinterStudded, "winter-studded", "studded":
		return domain.SeasonWinterStudded
	case domain.SeasonWinterNonStudded, "winter-non-studded", "friction":
		return domain.SeasonWinterNonStudded
	case domain.SeasonSummer:
		return domain.SeasonSummer
	default:
		return ""
	}
}
