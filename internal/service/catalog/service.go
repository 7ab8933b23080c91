package catalog

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"tireshop/internal/domain"
	productrepo "tireshop/internal/repository/product"
)

// PageSize is the fixed catalog page size.
const PageSize = 20

// SortPrice selects ascending price instead of the default popularity
// ordering.
const SortPrice = "price"

type Service struct {
	repo productRepo
}

type productRepo interface {
	List(ctx context.Context, params productrepo.ListParams) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	DistinctValues(ctx context.Context) (map[string][]string, error)
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// ListInput carries raw filter tokens as received from the client.
// Unknown or non-numeric tokens are dropped silently.
type ListInput struct {
	Width        []string
	Profile      []string
	Diameter     []string
	Season       []string
	Manufacturer []string
	Page         string
	Sort         string
}

type Page struct {
	Items []domain.Product `json:"items"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
	Total int              `json:"total"`
}

func (s *Service) List(ctx context.Context, in ListInput) (*Page, error) {
	page := parsePage(in.Page)
	params := productrepo.ListParams{
		Filter: productrepo.ListFilter{
			Widths:        parseIntSet(in.Width),
			Profiles:      parseIntSet(in.Profile),
			Diameters:     parseIntSet(in.Diameter),
			Seasons:       parseStringSet(in.Season),
			Manufacturers: parseStringSet(in.Manufacturer),
		},
		Offset:      (page - 1) * PageSize,
		Limit:       PageSize,
		SortByPrice: in.Sort == SortPrice,
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pages := (total + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}
	if page > pages {
		return nil, domain.ErrNotFound
	}
	if items == nil {
		items = []domain.Product{}
	}
	return &Page{Items: items, Page: page, Pages: pages, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// FilterValues returns the distinct values per filter field across all
// products, each tagged with a stable md5 content hash for client-side
// keying.
func (s *Service) FilterValues(ctx context.Context) (map[string][]domain.FilterValue, error) {
	raw, err := s.repo.DistinctValues(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]domain.FilterValue, len(raw))
	for field, labels := range raw {
		values := make([]domain.FilterValue, 0, len(labels))
		for _, label := range labels {
			values = append(values, domain.FilterValue{ID: HashLabel(label), Label: label})
		}
		out[field] = values
	}
	return out, nil
}

// HashLabel is the content hash identifier of one filter value.
func HashLabel(label string) string {
	sum := md5.Sum([]byte(label))
	return hex.EncodeToString(sum[:])
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseIntSet(tokens []string) []int {
	var out []int
	for _, token := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseStringSet(tokens []string) []string {
	var out []string
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}
