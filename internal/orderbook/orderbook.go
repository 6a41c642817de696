package orderbook

import (
	"container/list"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xtrntr/orderbook/internal/models"
)

// PricePolicy chooses the execution price for a fill between a crossed
// bid and ask. The book only calls it when bidPrice >= askPrice.
type PricePolicy func(bidPrice, askPrice decimal.Decimal) decimal.Decimal

// RestingAskPrice executes at the resting ask's price. This is the
// default policy.
func RestingAskPrice(bidPrice, askPrice decimal.Decimal) decimal.Decimal {
	return askPrice
}

// MidpointPrice executes halfway between the crossed prices
func MidpointPrice(bidPrice, askPrice decimal.Decimal) decimal.Decimal {
	return decimal.Avg(bidPrice, askPrice)
}

// Option configures an OrderBook
type Option func(*OrderBook)

// WithPricePolicy overrides the default RestingAskPrice policy
func WithPricePolicy(p PricePolicy) Option {
	return func(b *OrderBook) { b.pricing = p }
}

// location records where a live order rests: its price level and its
// element within that level's queue. Both references stay valid until
// the order itself is removed, regardless of activity elsewhere.
type location struct {
	level *priceLevel
	elem  *list.Element
}

// OrderBook holds all resting orders for a single symbol and matches
// them under price-time priority. It owns its orders, levels, and index
// outright; callers pass orders in and get copies or trades out.
//
// The book assumes one logical caller at a time and does no locking.
// Wrap it in a mutex or a single-writer loop if it must be shared.
type OrderBook struct {
	symbol  string
	bids    *sideBook
	asks    *sideBook
	index   map[uint64]location
	pricing PricePolicy
}

// New creates an empty order book for symbol
func New(symbol string, opts ...Option) *OrderBook {
	b := &OrderBook{
		symbol:  symbol,
		bids:    newSideBook(models.Buy),
		asks:    newSideBook(models.Sell),
		index:   make(map[uint64]location),
		pricing: RestingAskPrice,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Symbol returns the symbol this book is for
func (b *OrderBook) Symbol() string {
	return b.symbol
}

// Insert adds a fully populated order to the book. New orders always
// join the tail of their price level's queue: strict time priority.
// Insert never matches; run Match as a separate pass.
func (b *OrderBook) Insert(order *models.Order) error {
	if !order.Side.Valid() {
		return ErrInvalidSide
	}
	if !order.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if order.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, exists := b.index[order.ID]; exists {
		return ErrDuplicateOrder
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	level := b.side(order.Side).getOrCreate(order.Price)
	elem := level.queue.PushBack(order)
	b.index[order.ID] = location{level: level, elem: elem}
	return nil
}

// Cancel removes the order with the given ID from the book.
// A failed cancel mutates nothing.
func (b *OrderBook) Cancel(orderID uint64) error {
	loc, ok := b.index[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	b.remove(orderID, loc)
	return nil
}

// Modify amends a resting order. A price change forfeits queue priority:
// the order is cancelled and reinserted at the back of the new level's
// queue. A quantity-only change updates the order in place and keeps its
// position. Side and Symbol must match the resting order; changing them
// requires cancel + insert.
func (b *OrderBook) Modify(order *models.Order) error {
	loc, ok := b.index[order.ID]
	if !ok {
		return ErrOrderNotFound
	}
	resting := loc.elem.Value.(*models.Order)
	if resting.Side != order.Side || resting.Symbol != order.Symbol {
		return ErrOrderMismatch
	}
	// Validate before touching anything so a rejected modify leaves the
	// order exactly where it was.
	if !order.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if order.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if resting.Price.Equal(order.Price) {
		resting.Quantity = order.Quantity
		return nil
	}

	b.remove(resting.ID, loc)
	resting.Price = order.Price
	resting.Quantity = order.Quantity
	resting.CreatedAt = time.Now()
	return b.Insert(resting)
}

// Match crosses the book until the best bid no longer meets the best
// ask, returning the trades executed in sequence. Orders at a level fill
// strictly in arrival order, and a partially filled order stays at the
// front of its queue until fully consumed. A single pass may sweep
// several price levels on either side.
func (b *OrderBook) Match() []models.Trade {
	var trades []models.Trade

	for b.bids.len() > 0 && b.asks.len() > 0 {
		bestBid := b.bids.best()
		bestAsk := b.asks.best()
		if bestBid.price.LessThan(bestAsk.price) {
			break
		}

		price := b.pricing(bestBid.price, bestAsk.price)

		bidElem := bestBid.queue.Front()
		askElem := bestAsk.queue.Front()
		for bidElem != nil && askElem != nil {
			bid := bidElem.Value.(*models.Order)
			ask := askElem.Value.(*models.Order)

			quantity := min(bid.Quantity, ask.Quantity)
			bid.Quantity -= quantity
			ask.Quantity -= quantity

			trades = append(trades, models.Trade{
				ID:         uuid.New(),
				BidOrderID: bid.ID,
				AskOrderID: ask.ID,
				Symbol:     b.symbol,
				Price:      price,
				Quantity:   quantity,
				ExecutedAt: time.Now(),
			})

			// A fully filled order leaves its queue and the index.
			// A partial fill stays at the front and keeps its priority;
			// at least one side fills completely every iteration.
			if bid.Quantity == 0 {
				next := bidElem.Next()
				bestBid.queue.Remove(bidElem)
				delete(b.index, bid.ID)
				bidElem = next
			}
			if ask.Quantity == 0 {
				next := askElem.Next()
				bestAsk.queue.Remove(askElem)
				delete(b.index, ask.ID)
				askElem = next
			}
		}

		b.bids.removeIfEmpty(bestBid)
		b.asks.removeIfEmpty(bestAsk)
	}

	return trades
}

// Order returns a copy of the resting order with the given ID
func (b *OrderBook) Order(orderID uint64) (models.Order, bool) {
	loc, ok := b.index[orderID]
	if !ok {
		return models.Order{}, false
	}
	return *loc.elem.Value.(*models.Order), true
}

// Len returns the number of orders resting in the book
func (b *OrderBook) Len() int {
	return len(b.index)
}

// BestBid returns the highest resting buy price, if any bids exist
func (b *OrderBook) BestBid() (decimal.Decimal, bool) {
	if pl := b.bids.best(); pl != nil {
		return pl.price, true
	}
	return decimal.Decimal{}, false
}

// BestAsk returns the lowest resting sell price, if any asks exist
func (b *OrderBook) BestAsk() (decimal.Decimal, bool) {
	if pl := b.asks.best(); pl != nil {
		return pl.price, true
	}
	return decimal.Decimal{}, false
}

// Level is one row of a depth snapshot
type Level struct {
	Price    decimal.Decimal
	Quantity int64
	Orders   int
}

// Depth returns both sides' price levels from best to worst
func (b *OrderBook) Depth() (bids, asks []Level) {
	collect := func(sb *sideBook) []Level {
		levels := make([]Level, 0, sb.len())
		sb.each(func(pl *priceLevel) bool {
			levels = append(levels, Level{
				Price:    pl.price,
				Quantity: pl.totalQuantity(),
				Orders:   pl.queue.Len(),
			})
			return true
		})
		return levels
	}
	return collect(b.bids), collect(b.asks)
}

// side maps an order side to its side book
func (b *OrderBook) side(s models.Side) *sideBook {
	if s == models.Buy {
		return b.bids
	}
	return b.asks
}

// remove unlinks a live order from its queue, its level (if now empty),
// and the index in one step
func (b *OrderBook) remove(orderID uint64, loc location) {
	order := loc.elem.Value.(*models.Order)
	loc.level.queue.Remove(loc.elem)
	delete(b.index, orderID)
	b.side(order.Side).removeIfEmpty(loc.level)
}
