package orderbook

import "errors"

// Caller errors surfaced by the book. All four indicate a bug or stale
// reference on the caller's side; none are retried internally, and a
// failed operation leaves the book untouched.
var (
	ErrDuplicateOrder  = errors.New("order already exists")
	ErrInvalidSide     = errors.New("invalid order side")
	ErrInvalidPrice    = errors.New("order price must be positive")
	ErrInvalidQuantity = errors.New("order quantity must be positive")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderMismatch   = errors.New("order does not match resting order")
)
