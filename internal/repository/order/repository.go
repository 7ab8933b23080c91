package order

import (
	"context"

	"tireshop/internal/domain"
)

// PlaceInput carries everything the checkout transaction needs.
type PlaceInput struct {
	SessionToken string
	Contact      domain.Contact
	Address      domain.Address
}

// PlacedOrder is the committed order plus the cart snapshot it was
// built from, for the operator notification.
type PlacedOrder struct {
	Order domain.Order
	Lines []domain.CartItem
}

type Repository interface {
	// Place runs the whole checkout as one transaction: snapshot and
	// lock the session's cart lines, compute the total, create the
	// order with its address, contact and item snapshots, and clear
	// the cart. Any failure rolls the entire block back.
	Place(ctx context.Context, in PlaceInput) (*PlacedOrder, error)
}
