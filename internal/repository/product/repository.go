package product

import (
	"context"

	"tireshop/internal/domain"
)

// ListFilter holds the catalog filter sets. Values within one field are
// OR'd, fields are AND'd. Empty sets mean "no restriction".
type ListFilter struct {
	Widths        []int
	Profiles      []int
	Diameters     []int
	Seasons       []string
	Manufacturers []string
}

// ListParams describes one page of the visible catalog.
type ListParams struct {
	Filter      ListFilter
	Offset      int
	Limit       int
	SortByPrice bool
}

// FilterFields enumerates the filterable product columns in the order
// they are exposed to clients.
var FilterFields = []string{"width", "profile", "diameter", "season", "manufacturer"}

type Repository interface {
	// List returns one page of visible products plus the total number
	// of visible products matching the filter.
	List(ctx context.Context, params ListParams) ([]domain.Product, int, error)
	// GetByID returns a product with its images regardless of
	// visibility.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// DistinctValues returns the distinct values of every filter field
	// across all products, visible or not.
	DistinctValues(ctx context.Context) (map[string][]string, error)
	// Upsert inserts or updates a product keyed by product code.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
