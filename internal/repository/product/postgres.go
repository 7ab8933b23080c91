package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"tireshop/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `p.id, p.name, p.manufacturers_code, p.season, p.width, p.load_index, p.profile,
p.speed_index, p.diameter, p.homologation, p.tire_model, p.product_code, p.manufacturer,
p.description, p.price, p.visible`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, params ListParams) ([]domain.Product, int, error) {
	where, args := buildFilterWhere(params.Filter)

	countQuery := `SELECT COUNT(*) FROM products p ` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	order := `popularity DESC, p.id ASC`
	if params.SortByPrice {
		order = `p.price ASC, p.id ASC`
	}
	listQuery := fmt.Sprintf(`
SELECT %s, COUNT(oi.id) AS popularity
FROM products p
LEFT JOIN order_items oi ON oi.product_id = p.id
%s
GROUP BY p.id
ORDER BY %s
LIMIT $%d OFFSET $%d
`, productColumns, where, order, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		var popularity int64
		if err := scanProduct(rows, &p, &popularity); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, 0, err
	}

	if err := r.attachImages(ctx, result); err != nil {
		return nil, 0, err
	}
	r.logger.Printf("product repo: list count=%d total=%d", len(result), total)
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s, 0 FROM products p WHERE p.id = $1`, productColumns)
	var p domain.Product
	var popularity int64
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.ManufacturersCode, &p.Season, &p.Width, &p.LoadIndex, &p.Profile,
		&p.SpeedIndex, &p.Diameter, &p.Homologation, &p.TireModel, &p.ProductCode, &p.Manufacturer,
		&p.Description, &p.Price, &p.Visible, &popularity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}

	items := []domain.Product{p}
	if err := r.attachImages(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (r *postgresRepo) DistinctValues(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string, len(FilterFields))
	for _, field := range FilterFields {
		// field comes from the FilterFields whitelist, never from input.
		query := fmt.Sprintf(`SELECT DISTINCT %s::text FROM products ORDER BY %s::text`, field, field)
		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			r.logger.Printf("product repo: distinct %s error=%v", field, err)
			return nil, err
		}
		var values []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, err
			}
			values = append(values, v)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		out[field] = values
	}
	return out, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, manufacturers_code, season, width, load_index, profile, speed_index,
                      diameter, homologation, tire_model, product_code, manufacturer, description,
                      price, visible)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (product_code) WHERE product_code <> 0 DO UPDATE SET
    name = EXCLUDED.name,
    manufacturers_code = EXCLUDED.manufacturers_code,
    season = EXCLUDED.season,
    width = EXCLUDED.width,
    load_index = EXCLUDED.load_index,
    profile = EXCLUDED.profile,
    speed_index = EXCLUDED.speed_index,
    diameter = EXCLUDED.diameter,
    homologation = EXCLUDED.homologation,
    tire_model = EXCLUDED.tire_model,
    manufacturer = EXCLUDED.manufacturer,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    visible = EXCLUDED.visible
RETURNING id
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.Name, p.ManufacturersCode, p.Season, p.Width, p.LoadIndex, p.Profile, p.SpeedIndex,
		p.Diameter, p.Homologation, p.TireModel, p.ProductCode, p.Manufacturer, p.Description,
		p.Price, p.Visible,
	).Scan(&res.ID)
	if err != nil {
		r.logger.Printf("product repo: upsert code=%d error=%v", p.ProductCode, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted code=%d id=%d", res.ProductCode, res.ID)
	return &res, nil
}

func (r *postgresRepo) attachImages(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	const q = `
SELECT product_id, url
FROM product_images
WHERE product_id = ANY($1)
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: images error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var url string
		if err := rows.Scan(&productID, &url); err != nil {
			return err
		}
		if i, ok := index[productID]; ok {
			products[i].Images = append(products[i].Images, url)
		}
	}
	return rows.Err()
}

func scanProduct(rows pgx.Rows, p *domain.Product, popularity *int64) error {
	return rows.Scan(
		&p.ID, &p.Name, &p.ManufacturersCode, &p.Season, &p.Width, &p.LoadIndex, &p.Profile,
		&p.SpeedIndex, &p.Diameter, &p.Homologation, &p.TireModel, &p.ProductCode, &p.Manufacturer,
		&p.Description, &p.Price, &p.Visible, popularity,
	)
}

// buildFilterWhere renders the visibility clause plus one = ANY clause
// per non-empty filter set.
func buildFilterWhere(f ListFilter) (string, []interface{}) {
	clauses := []string{"p.visible = TRUE"}
	var args []interface{}

	add := func(column string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf("p.%s = ANY($%d)", column, len(args)))
	}
	if len(f.Widths) > 0 {
		add("width", f.Widths)
	}
	if len(f.Profiles) > 0 {
		add("profile", f.Profiles)
	}
	if len(f.Diameters) > 0 {
		add("diameter", f.Diameters)
	}
	if len(f.Seasons) > 0 {
		add("season", f.Seasons)
	}
	if len(f.Manufacturers) > 0 {
		add("manufacturer", f.Manufacturers)
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
