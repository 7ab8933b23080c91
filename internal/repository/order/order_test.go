package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"tireshop/internal/domain"
	"tireshop/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_PlaceCommitsWholeOrder(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	first := insertProduct(ctx, t, pool, "Hakkapeliitta 10p", 1000)
	second := insertProduct(ctx, t, pool, "X-Ice Snow", 500)
	insertSession(ctx, t, pool, "sess")
	addCartLine(ctx, t, pool, "sess", first, 2)
	addCartLine(ctx, t, pool, "sess", second, 1)

	repo := NewPostgres(pool, nil)
	placed, err := repo.Place(ctx, PlaceInput{
		SessionToken: "sess",
		Contact: domain.Contact{
			Type:    domain.ContactTypeIndividual,
			Surname: "Ivanov",
			Name:    "Ivan",
			Email:   "ivan@example.com",
			Phone:   "+79990001122",
		},
		Address: domain.Address{City: "Moscow", Street: "Tverskaya", HouseNumber: "5"},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placed.Order.TotalPrice != 2500 {
		t.Fatalf("expected total 2500, got %d", placed.Order.TotalPrice)
	}
	if placed.Order.Status != domain.OrderStatusCreated {
		t.Fatalf("expected status created, got %q", placed.Order.Status)
	}
	if len(placed.Lines) != 2 {
		t.Fatalf("expected 2 lines in snapshot, got %d", len(placed.Lines))
	}

	var itemCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM order_items WHERE order_id = $1`, placed.Order.ID).Scan(&itemCount); err != nil {
		t.Fatalf("count order items: %v", err)
	}
	if itemCount != 2 {
		t.Fatalf("expected 2 order items, got %d", itemCount)
	}
	var contactCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM individuals WHERE order_id = $1`, placed.Order.ID).Scan(&contactCount); err != nil {
		t.Fatalf("count contacts: %v", err)
	}
	if contactCount != 1 {
		t.Fatalf("expected 1 contact row, got %d", contactCount)
	}
	var city string
	if err := pool.QueryRow(ctx, `SELECT city FROM addresses WHERE order_id = $1`, placed.Order.ID).Scan(&city); err != nil {
		t.Fatalf("read address: %v", err)
	}
	if city != "Moscow" {
		t.Fatalf("unexpected address city %q", city)
	}

	var cartCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM cart_items WHERE session_token = 'sess'`).Scan(&cartCount); err != nil {
		t.Fatalf("count cart: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("cart must be cleared after checkout, %d lines left", cartCount)
	}
}

func TestPostgres_PlaceLegalEntityContact(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	productID := insertProduct(ctx, t, pool, "Hakkapeliitta 10p", 1000)
	insertSession(ctx, t, pool, "sess")
	addCartLine(ctx, t, pool, "sess", productID, 1)

	repo := NewPostgres(pool, nil)
	placed, err := repo.Place(ctx, PlaceInput{
		SessionToken: "sess",
		Contact: domain.Contact{
			Type:               domain.ContactTypeLegalEntity,
			Surname:            "Petrov",
			Name:               "Petr",
			Email:              "petr@tires.example",
			Phone:              "+79990003344",
			RegistrationNumber: "12345678",
			LegalAddress:       "Moscow, Lenina 1",
			OrganizationName:   "Tires LLC",
		},
		Address: domain.Address{City: "Moscow", Street: "Lenina", HouseNumber: "1"},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	var org string
	if err := pool.QueryRow(ctx, `SELECT organization_name FROM legal_entities WHERE order_id = $1`, placed.Order.ID).Scan(&org); err != nil {
		t.Fatalf("read legal entity: %v", err)
	}
	if org != "Tires LLC" {
		t.Fatalf("unexpected organization %q", org)
	}
}

func TestPostgres_PlaceEmptyCartRollsBack(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	insertSession(ctx, t, pool, "sess")
	repo := NewPostgres(pool, nil)
	_, err := repo.Place(ctx, PlaceInput{
		SessionToken: "sess",
		Contact:      domain.Contact{Type: domain.ContactTypeIndividual, Surname: "A", Name: "B", Email: "a@b", Phone: "1"},
		Address:      domain.Address{City: "Moscow", Street: "Tverskaya", HouseNumber: "5"},
	})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}
	var orderCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&orderCount); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("no order rows expected, got %d", orderCount)
	}
}

func TestPostgres_PlaceUnknownContactTypeRollsBack(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	productID := insertProduct(ctx, t, pool, "Hakkapeliitta 10p", 1000)
	insertSession(ctx, t, pool, "sess")
	addCartLine(ctx, t, pool, "sess", productID, 1)

	repo := NewPostgres(pool, nil)
	_, err := repo.Place(ctx, PlaceInput{
		SessionToken: "sess",
		Contact:      domain.Contact{Type: "robot"},
		Address:      domain.Address{City: "Moscow", Street: "Tverskaya", HouseNumber: "5"},
	})
	if !errors.Is(err, domain.ErrInvalidContactType) {
		t.Fatalf("expected invalid contact type, got %v", err)
	}

	var orderCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&orderCount); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("rollback must remove the order row, got %d", orderCount)
	}
	var cartCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM cart_items`).Scan(&cartCount); err != nil {
		t.Fatalf("count cart: %v", err)
	}
	if cartCount != 1 {
		t.Fatalf("rollback must keep the cart, got %d lines", cartCount)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_items, legal_entities, individuals, addresses, orders, cart_items, sessions, product_images, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func insertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string, price int64) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(ctx, `
INSERT INTO products (name, season, width, profile, diameter, manufacturer, price)
VALUES ($1, 'winter studded', 205, 55, 16, 'Testbrand', $2)
RETURNING id
`, name, price).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

func insertSession(ctx context.Context, t *testing.T, pool *pgxpool.Pool, token string) {
	t.Helper()
	if _, err := pool.Exec(ctx, `INSERT INTO sessions (token) VALUES ($1) ON CONFLICT DO NOTHING`, token); err != nil {
		t.Fatalf("insert session: %v", err)
	}
}

func addCartLine(ctx context.Context, t *testing.T, pool *pgxpool.Pool, token string, productID int64, quantity int) {
	t.Helper()
	if _, err := pool.Exec(ctx, `
INSERT INTO cart_items (session_token, product_id, quantity) VALUES ($1, $2, $3)
`, token, productID, quantity); err != nil {
		t.Fatalf("insert cart line: %v", err)
	}
}
