package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tireshop/internal/domain"
)

type stubWriter struct {
	upserted []domain.Product
	err      error
}

func (s *stubWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.upserted = append(s.upserted, p)
	return &p, s.err
}

const sampleCSV = `name,manufacturer,season,product_code,width,profile,diameter,price,tire_model,visible
Hakkapeliitta 10p,Nokian,winter studded,1001,205,55,16,12000,Hakkapeliitta,true
X-Ice Snow,Michelin,friction,1002,195,65,15,9500,X-Ice,
,Nokian,summer,1003,195,65,15,8000,,
Pilot Sport,Michelin,summer,0,225,45,18,15000,,
CrossClimate,Michelin,all-season,1005,205,60,16,11000,,
Primacy 4,Michelin,summer,1006,205,not-a-number,16,10000,,
`

func TestRunImportsValidRowsAndSkipsBadOnes(t *testing.T) {
	writer := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(sampleCSV), writer)

	imported, skipped, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if imported != 2 || skipped != 4 {
		t.Fatalf("expected 2 imported / 4 skipped, got %d / %d", imported, skipped)
	}

	first := writer.upserted[0]
	if first.Name != "Hakkapeliitta 10p" || first.ProductCode != 1001 || first.Price != 12000 {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if first.Season != domain.SeasonWinterStudded || !first.Visible {
		t.Fatalf("unexpected first product flags: %+v", first)
	}

	second := writer.upserted[1]
	if second.Season != domain.SeasonWinterNonStudded {
		t.Fatalf("friction alias must normalize, got %q", second.Season)
	}
}

func TestRunVisibleColumn(t *testing.T) {
	csv := `name,manufacturer,season,product_code,width,profile,diameter,price,visible
Hidden,Nokian,summer,2001,195,65,15,8000,false
`
	writer := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), writer)
	if _, _, err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(writer.upserted) != 1 || writer.upserted[0].Visible {
		t.Fatalf("visible=false must be honored: %+v", writer.upserted)
	}
}

func TestRunHeaderCaseInsensitive(t *testing.T) {
	csv := `Name,MANUFACTURER,Season,Product_Code,Width,Profile,Diameter,Price
Tire,Nokian,summer,3001,195,65,15,8000
`
	writer := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), writer)
	imported, skipped, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if imported != 1 || skipped != 0 {
		t.Fatalf("expected 1 imported, got %d / %d", imported, skipped)
	}
}

func TestRunStopsOnRepoError(t *testing.T) {
	writer := &stubWriter{err: errors.New("db down")}
	imp := NewCSVImporter(strings.NewReader(sampleCSV), writer)
	_, _, err := imp.Run(context.Background())
	if err == nil {
		t.Fatal("expected error when upsert fails")
	}
}

func TestNormalizeSeason(t *testing.T) {
	cases := map[string]string{
		"winter studded":     domain.SeasonWinterStudded,
		"Studded":            domain.SeasonWinterStudded,
		"winter-non-studded": domain.SeasonWinterNonStudded,
		"FRICTION":           domain.SeasonWinterNonStudded,
		"summer":             domain.SeasonSummer,
		"all-season":         "",
		"":                   "",
	}
	for in, want := range cases {
		if got := normalizeSeason(in); got != want {
			t.Errorf("normalizeSeason(%q) = %q, want %q", in, got, want)
		}
	}
}
