package cart

import (
	"context"
	"fmt"
	"strings"

	"tireshop/internal/domain"
	cartrepo "tireshop/internal/repository/cart"
	sessionrepo "tireshop/internal/repository/session"
)

type Service struct {
	repo     cartRepo
	products productGetter
	sessions sessionStore
}

type cartRepo interface {
	Add(ctx context.Context, sessionToken string, productID int64, quantity int) error
	Remove(ctx context.Context, sessionToken string, productID int64, removeAll bool) error
	ListBySession(ctx context.Context, sessionToken string) ([]domain.CartItem, error)
	CountBySession(ctx context.Context, sessionToken string) (int, error)
}

type productGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type sessionStore interface {
	Create(ctx context.Context, token string) error
}

func New(repo cartrepo.Repository, products productGetter, sessions sessionrepo.Repository) *Service {
	return &Service{repo: repo, products: products, sessions: sessions}
}

// Add merges quantity into the session's line for the product,
// creating the session lazily on first interaction.
func (s *Service) Add(ctx context.Context, sessionToken string, productID int64, quantity int) error {
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return fmt.Errorf("%w: session id required", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrInvalidInput)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	if err := s.sessions.Create(ctx, sessionToken); err != nil {
		return err
	}
	return s.repo.Add(ctx, sessionToken, productID, quantity)
}

// Remove deletes the whole line when removeAll is set; otherwise it
// decrements by one, deleting the line when the quantity reaches zero.
func (s *Service) Remove(ctx context.Context, sessionToken string, productID int64, removeAll bool) error {
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return fmt.Errorf("%w: session id required", domain.ErrInvalidInput)
	}
	return s.repo.Remove(ctx, sessionToken, productID, removeAll)
}

// List returns the session's cart lines and the total price computed
// at read time from current product prices.
func (s *Service) List(ctx context.Context, sessionToken string) ([]domain.CartItem, int64, error) {
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return nil, 0, fmt.Errorf("%w: session id required", domain.ErrInvalidInput)
	}
	items, err := s.repo.ListBySession(ctx, sessionToken)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, total, nil
}

func (s *Service) Count(ctx context.Context, sessionToken string) (int, error) {
	return s.repo.CountBySession(ctx, sessionToken)
}
