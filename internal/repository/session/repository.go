package session

import "context"

type Repository interface {
	// Create persists the token if absent. Idempotent.
	Create(ctx context.Context, token string) error
	// Exists reports whether the token is a known session.
	Exists(ctx context.Context, token string) (bool, error)
}
