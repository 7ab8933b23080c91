package session

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO sessions (token) VALUES ($1)
ON CONFLICT (token) DO NOTHING
`, token)
	return err
}

func (r *postgresRepo) Exists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM sessions WHERE token = $1)
`, token).Scan(&exists)
	return exists, err
}
