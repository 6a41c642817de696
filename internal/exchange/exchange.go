package exchange

import (
	"sort"

	"github.com/xtrntr/orderbook/internal/models"
	"github.com/xtrntr/orderbook/internal/orderbook"
)

// Exchange owns one order book per symbol and routes operations to the
// right book. Books are created lazily on first use, live for the life
// of the Exchange, and share no state with each other.
//
// Like the books it owns, an Exchange expects a single logical caller
// at a time.
type Exchange struct {
	books map[string]*orderbook.OrderBook
	opts  []orderbook.Option
}

// NewExchange creates an empty exchange. The options are applied to
// every book it creates.
func NewExchange(opts ...orderbook.Option) *Exchange {
	return &Exchange{
		books: make(map[string]*orderbook.OrderBook),
		opts:  opts,
	}
}

// Book returns the order book for symbol, creating it on first use
func (e *Exchange) Book(symbol string) *orderbook.OrderBook {
	book, ok := e.books[symbol]
	if !ok {
		book = orderbook.New(symbol, e.opts...)
		e.books[symbol] = book
	}
	return book
}

// Insert routes the order to its symbol's book
func (e *Exchange) Insert(order *models.Order) error {
	return e.Book(order.Symbol).Insert(order)
}

// Cancel removes an order from the named symbol's book
func (e *Exchange) Cancel(symbol string, orderID uint64) error {
	book, ok := e.books[symbol]
	if !ok {
		return orderbook.ErrOrderNotFound
	}
	return book.Cancel(orderID)
}

// Modify routes an amendment to its symbol's book
func (e *Exchange) Modify(order *models.Order) error {
	book, ok := e.books[order.Symbol]
	if !ok {
		return orderbook.ErrOrderNotFound
	}
	return book.Modify(order)
}

// Match runs a matching pass over one symbol's book
func (e *Exchange) Match(symbol string) []models.Trade {
	book, ok := e.books[symbol]
	if !ok {
		return nil
	}
	return book.Match()
}

// MatchAll runs a matching pass over every book, in symbol order
func (e *Exchange) MatchAll() []models.Trade {
	var trades []models.Trade
	for _, symbol := range e.Symbols() {
		trades = append(trades, e.books[symbol].Match()...)
	}
	return trades
}

// Symbols lists the symbols with a book, sorted
func (e *Exchange) Symbols() []string {
	symbols := make([]string, 0, len(e.books))
	for symbol := range e.books {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
