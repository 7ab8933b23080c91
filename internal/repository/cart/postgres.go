package cart

import (
	"context"
	"errors"

	"tireshop/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Add(ctx context.Context, sessionToken string, productID int64, quantity int) error {
	const q = `
INSERT INTO cart_items (session_token, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (session_token, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, sessionToken, productID, quantity)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, sessionToken string, productID int64, removeAll bool) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if removeAll {
		cmd, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE session_token = $1 AND product_id = $2
`, sessionToken, productID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return tx.Commit(ctx)
	}

	var id int64
	var quantity int
	err = tx.QueryRow(ctx, `
SELECT id, quantity
FROM cart_items
WHERE session_token = $1 AND product_id = $2
FOR UPDATE
`, sessionToken, productID).Scan(&id, &quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if quantity > 1 {
		_, err = tx.Exec(ctx, `UPDATE cart_items SET quantity = quantity - 1 WHERE id = $1`, id)
	} else {
		_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionToken string) ([]domain.CartItem, error) {
	const q = `
SELECT ci.id, ci.session_token, ci.product_id, ci.quantity,
       p.id, p.name, p.manufacturers_code, p.season, p.width, p.load_index, p.profile,
       p.speed_index, p.diameter, p.homologation, p.tire_model, p.product_code, p.manufacturer,
       p.description, p.price, p.visible
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.session_token = $1
ORDER BY ci.id ASC
`
	rows, err := r.pool.Query(ctx, q, sessionToken)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		p := &item.Product
		if err := rows.Scan(
			&item.ID, &item.SessionToken, &item.ProductID, &item.Quantity,
			&p.ID, &p.Name, &p.ManufacturersCode, &p.Season, &p.Width, &p.LoadIndex, &p.Profile,
			&p.SpeedIndex, &p.Diameter, &p.Homologation, &p.TireModel, &p.ProductCode, &p.Manufacturer,
			&p.Description, &p.Price, &p.Visible,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachImages(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) CountBySession(ctx context.Context, sessionToken string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM cart_items WHERE session_token = $1
`, sessionToken).Scan(&count)
	return count, err
}

func (r *postgresRepo) Clear(ctx context.Context, sessionToken string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE session_token = $1`, sessionToken)
	return err
}

func (r *postgresRepo) attachImages(ctx context.Context, items []domain.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	rows, err := r.pool.Query(ctx, `
SELECT product_id, url
FROM product_images
WHERE product_id = ANY($1)
ORDER BY id ASC
`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	urls := make(map[int64][]string)
	for rows.Next() {
		var productID int64
		var url string
		if err := rows.Scan(&productID, &url); err != nil {
			return err
		}
		urls[productID] = append(urls[productID], url)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range items {
		items[i].Product.Images = urls[items[i].ProductID]
	}
	return nil
}
