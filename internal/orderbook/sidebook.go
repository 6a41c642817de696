package orderbook

import (
	"container/list"

	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/xtrntr/orderbook/internal/models"
)

const levelTreeDegree = 32

// priceLevel holds the FIFO queue of orders resting at one price.
// The queue is a container/list so that an element stays valid while
// orders elsewhere in the book are inserted or removed; the order index
// stores these elements to reach any order without scanning.
type priceLevel struct {
	price decimal.Decimal
	queue *list.List // of *models.Order
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{price: price, queue: list.New()}
}

// totalQuantity sums the remaining quantity of every order at this level
func (pl *priceLevel) totalQuantity() int64 {
	var total int64
	for e := pl.queue.Front(); e != nil; e = e.Next() {
		total += e.Value.(*models.Order).Quantity
	}
	return total
}

// sideBook keeps one side's price levels sorted so that the best price
// is always the tree minimum: bids compare descending (highest first),
// asks ascending (lowest first)
type sideBook struct {
	levels *btree.BTreeG[*priceLevel]
}

func newSideBook(side models.Side) *sideBook {
	less := func(a, b *priceLevel) bool { return a.price.LessThan(b.price) }
	if side == models.Buy {
		less = func(a, b *priceLevel) bool { return a.price.GreaterThan(b.price) }
	}
	return &sideBook{levels: btree.NewG(levelTreeDegree, less)}
}

// level returns the price level at price, or nil if none exists
func (sb *sideBook) level(price decimal.Decimal) *priceLevel {
	pl, ok := sb.levels.Get(&priceLevel{price: price})
	if !ok {
		return nil
	}
	return pl
}

// getOrCreate returns the level at price, creating it in sorted position
// on first use. Creation does not disturb orders at other levels.
func (sb *sideBook) getOrCreate(price decimal.Decimal) *priceLevel {
	if pl := sb.level(price); pl != nil {
		return pl
	}
	pl := newPriceLevel(price)
	sb.levels.ReplaceOrInsert(pl)
	return pl
}

// removeIfEmpty erases the level once its queue has drained.
// Empty levels never persist in the book.
func (sb *sideBook) removeIfEmpty(pl *priceLevel) {
	if pl.queue.Len() == 0 {
		sb.levels.Delete(pl)
	}
}

// best returns the best-priced level: highest bid or lowest ask
func (sb *sideBook) best() *priceLevel {
	pl, ok := sb.levels.Min()
	if !ok {
		return nil
	}
	return pl
}

// len returns the number of price levels on this side
func (sb *sideBook) len() int {
	return sb.levels.Len()
}

// each walks the levels from best to worst, stopping when fn returns false
func (sb *sideBook) each(fn func(*priceLevel) bool) {
	sb.levels.Ascend(fn)
}
