package seed

import (
	"context"
	"fmt"

	"tireshop/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	product domain.Product
	images  []string
}

// Apply inserts basic tire data for manual testing. It is idempotent
// via the product_code conflict target.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			product: domain.Product{
				Name:              "Nokian Hakkapeliitta 10p 205/55 R16",
				ManufacturersCode: 52312,
				Season:            domain.SeasonWinterStudded,
				Width:             205,
				LoadIndex:         94,
				Profile:           55,
				SpeedIndex:        "T",
				Diameter:          16,
				Homologation:      "3PMSF",
				TireModel:         "Hakkapeliitta 10p",
				ProductCode:       100001,
				Manufacturer:      "Nokian",
				Description:       "Studded winter tire with a double stud system.",
				Price:             9800,
				Visible:           true,
			},
			images: []string{"product_images/hakkapeliitta-10p.jpg"},
		},
		{
			product: domain.Product{
				Name:              "Michelin X-Ice Snow 195/65 R15",
				ManufacturersCode: 41877,
				Season:            domain.SeasonWinterNonStudded,
				Width:             195,
				LoadIndex:         95,
				Profile:           65,
				SpeedIndex:        "H",
				Diameter:          15,
				Homologation:      "3PMSF",
				TireModel:         "X-Ice Snow",
				ProductCode:       100002,
				Manufacturer:      "Michelin",
				Description:       "Friction winter tire for severe snow conditions.",
				Price:             7400,
				Visible:           true,
			},
			images: []string{"product_images/x-ice-snow.jpg"},
		},
		{
			product: domain.Product{
				Name:              "Continental PremiumContact 6 225/45 R17",
				ManufacturersCode: 35810,
				Season:            domain.SeasonSummer,
				Width:             225,
				LoadIndex:         91,
				Profile:           45,
				SpeedIndex:        "Y",
				Diameter:          17,
				Homologation:      "MO",
				TireModel:         "PremiumContact 6",
				ProductCode:       100003,
				Manufacturer:      "Continental",
				Description:       "Summer tire balancing comfort and sporty handling.",
				Price:             11200,
				Visible:           true,
			},
			images: []string{"product_images/premiumcontact-6.jpg"},
		},
	}

	for _, s := range products {
		if err := upsertProduct(ctx, pool, s); err != nil {
			return fmt.Errorf("upsert product code=%d: %w", s.product.ProductCode, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, s productSeed) error {
	const q = `
INSERT INTO products (name, manufacturers_code, season, width, load_index, profile, speed_index,
                      diameter, homologation, tire_model, product_code, manufacturer, description,
                      price, visible)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (product_code) WHERE product_code <> 0 DO UPDATE
SET name = EXCLUDED.name,
    season = EXCLUDED.season,
    price = EXCLUDED.price,
    visible = EXCLUDED.visible
RETURNING id
`
	p := s.product
	var id int64
	if err := pool.QueryRow(ctx, q,
		p.Name, p.ManufacturersCode, p.Season, p.Width, p.LoadIndex, p.Profile, p.SpeedIndex,
		p.Diameter, p.Homologation, p.TireModel, p.ProductCode, p.Manufacturer, p.Description,
		p.Price, p.Visible,
	).Scan(&id); err != nil {
		return err
	}

	for _, url := range s.images {
		if _, err := pool.Exec(ctx, `
INSERT INTO product_images (product_id, url)
SELECT $1, $2
WHERE NOT EXISTS (SELECT 1 FROM product_images WHERE product_id = $1 AND url = $2)
`, id, url); err != nil {
			return err
		}
	}
	return nil
}
