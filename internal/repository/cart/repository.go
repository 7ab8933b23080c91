package cart

import (
	"context"

	"tireshop/internal/domain"
)

type Repository interface {
	// Add merges quantity into the (session, product) line, creating
	// it if absent. The merge is a single conditional upsert so
	// concurrent adds to the same pair never lose updates.
	Add(ctx context.Context, sessionToken string, productID int64, quantity int) error
	// Remove deletes the line when removeAll is set or the quantity is
	// 1, and decrements it by 1 otherwise. Missing line: ErrNotFound.
	Remove(ctx context.Context, sessionToken string, productID int64, removeAll bool) error
	// ListBySession returns the session's lines with embedded product
	// detail, ordered by insertion.
	ListBySession(ctx context.Context, sessionToken string) ([]domain.CartItem, error)
	// CountBySession returns the number of distinct lines.
	CountBySession(ctx context.Context, sessionToken string) (int, error)
	// Clear deletes every line for the session.
	Clear(ctx context.Context, sessionToken string) error
}
