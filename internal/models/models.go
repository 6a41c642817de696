package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side identifies which half of the book an order belongs to
type Side int

const (
	Buy Side = iota + 1
	Sell
)

// Valid reports whether s is Buy or Sell
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Order represents a limit order resting in (or destined for) the book.
// ID is assigned by the caller and must be unique while the order is live.
// Quantity is mutated in place as fills occur; Side and Symbol never change
// for the life of the order (a price change is handled as cancel + reinsert).
type Order struct {
	ID        uint64
	Symbol    string
	Side      Side
	Price     decimal.Decimal // Limit price, strictly positive
	Quantity  int64           // Remaining quantity in whole units
	CreatedAt time.Time       // Set by the book on insert; queue position is authoritative for time priority
}

// Trade represents one fill between a resting bid and a resting ask
type Trade struct {
	ID         uuid.UUID       `json:"id"`
	BidOrderID uint64          `json:"bid_order_id"`
	AskOrderID uint64          `json:"ask_order_id"`
	Symbol     string          `json:"symbol"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	ExecutedAt time.Time       `json:"executed_at"`
}
