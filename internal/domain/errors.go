package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a malformed quantity or missing
	// required contact/address fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidContactType indicates a contact type outside the
	// individual/legal_entity enum.
	ErrInvalidContactType = errors.New("invalid contact type")
	// ErrEmptyCart indicates checkout was attempted with no cart items
	// for the session.
	ErrEmptyCart = errors.New("cart is empty")
)
