package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"tireshop/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *postgresRepo) Place(ctx context.Context, in PlaceInput) (*PlacedOrder, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lines, err := snapshotCart(ctx, tx, in.SessionToken)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var total int64
	for _, line := range lines {
		total += line.LineTotal()
	}

	var ord domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (total_price) VALUES ($1)
RETURNING id, created_at, total_price, status
`, total).Scan(&ord.ID, &ord.CreatedAt, &ord.TotalPrice, &ord.Status)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO addresses (order_id, city, street, house_number, apartment_or_office, entrance, floor, intercom, delivery_comments)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, ord.ID, in.Address.City, in.Address.Street, in.Address.HouseNumber, in.Address.ApartmentOrOffice,
		in.Address.Entrance, in.Address.Floor, in.Address.Intercom, in.Address.DeliveryComments); err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}

	if err := ensureContact(ctx, tx, ord.ID, in.Contact); err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3)
`, ord.ID, line.ProductID, line.Quantity)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, fmt.Errorf("insert order items: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM cart_items WHERE session_token = $1
`, in.SessionToken); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: placed order id=%d total=%d lines=%d", ord.ID, total, len(lines))
	return &PlacedOrder{Order: ord, Lines: lines}, nil
}

// snapshotCart reads and row-locks the session's cart lines so a
// racing add/remove fully precedes or follows this order.
func snapshotCart(ctx context.Context, tx pgx.Tx, sessionToken string) ([]domain.CartItem, error) {
	rows, err := tx.Query(ctx, `
SELECT ci.id, ci.product_id, ci.quantity, p.name, p.tire_model, p.manufacturer, p.price
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.session_token = $1
ORDER BY ci.id ASC
FOR UPDATE OF ci
`, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("snapshot cart: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartItem
	for rows.Next() {
		var line domain.CartItem
		if err := rows.Scan(
			&line.ID, &line.ProductID, &line.Quantity,
			&line.Product.Name, &line.Product.TireModel, &line.Product.Manufacturer, &line.Product.Price,
		); err != nil {
			return nil, err
		}
		line.SessionToken = sessionToken
		line.Product.ID = line.ProductID
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ensureContact attaches exactly one contact variant to the order with
// get-or-create semantics keyed on (order, contact fields).
func ensureContact(ctx context.Context, tx pgx.Tx, orderID int64, c domain.Contact) error {
	switch c.Type {
	case domain.ContactTypeIndividual:
		var id int64
		err := tx.QueryRow(ctx, `
SELECT id FROM individuals
WHERE order_id = $1 AND surname = $2 AND name = $3 AND patronymic = $4 AND email = $5 AND phone = $6
`, orderID, c.Surname, c.Name, c.Patronymic, c.Email, c.Phone).Scan(&id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		_, err = tx.Exec(ctx, `
INSERT INTO individuals (order_id, surname, name, patronymic, email, phone)
VALUES ($1, $2, $3, $4, $5, $6)
`, orderID, c.Surname, c.Name, c.Patronymic, c.Email, c.Phone)
		return err
	case domain.ContactTypeLegalEntity:
		var id int64
		err := tx.QueryRow(ctx, `
SELECT id FROM legal_entities
WHERE order_id = $1 AND surname = $2 AND name = $3 AND patronymic = $4 AND email = $5 AND phone = $6
  AND registration_number = $7 AND legal_address = $8 AND organization_name = $9
`, orderID, c.Surname, c.Name, c.Patronymic, c.Email, c.Phone,
			c.RegistrationNumber, c.LegalAddress, c.OrganizationName).Scan(&id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		_, err = tx.Exec(ctx, `
INSERT INTO legal_entities (order_id, surname, name, patronymic, email, phone, registration_number, legal_address, organization_name)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, orderID, c.Surname, c.Name, c.Patronymic, c.Email, c.Phone,
			c.RegistrationNumber, c.LegalAddress, c.OrganizationName)
		return err
	default:
		return domain.ErrInvalidContactType
	}
}
