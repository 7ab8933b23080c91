package session

import (
	"context"
	"strings"

	sessionrepo "tireshop/internal/repository/session"

	"github.com/google/uuid"
)

type Service struct {
	repo  sessionRepo
	carts cartCounter
}

type sessionRepo interface {
	Create(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
}

type cartCounter interface {
	CountBySession(ctx context.Context, sessionToken string) (int, error)
}

func New(repo sessionrepo.Repository, carts cartCounter) *Service {
	return &Service{repo: repo, carts: carts}
}

// Info is the result of Ensure: the effective token, the number of
// cart lines held by it, and whether the session was just minted.
type Info struct {
	Token         string `json:"session_id"`
	CartItemCount int    `json:"cart_items_count"`
	Created       bool   `json:"created"`
}

// Ensure resolves the supplied token to a durable session. A blank or
// unknown token gets a freshly minted identifier; a known token is
// returned unchanged. Idempotent for known tokens.
func (s *Service) Ensure(ctx context.Context, token string) (*Info, error) {
	token = strings.TrimSpace(token)
	if token != "" {
		known, err := s.repo.Exists(ctx, token)
		if err != nil {
			return nil, err
		}
		if known {
			count, err := s.carts.CountBySession(ctx, token)
			if err != nil {
				return nil, err
			}
			return &Info{Token: token, CartItemCount: count, Created: false}, nil
		}
	}

	token = uuid.NewString()
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, err
	}
	return &Info{Token: token, CartItemCount: 0, Created: true}, nil
}
