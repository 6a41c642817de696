package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/xtrntr/orderbook/internal/exchange"
	"github.com/xtrntr/orderbook/internal/models"
	"github.com/xtrntr/orderbook/internal/orderbook"
)

// Drive the matching engine with a deterministic stream of random
// orders and print what the books look like afterwards.
func main() {
	rng := rand.New(rand.NewSource(42))
	ex := exchange.NewExchange()

	symbols := []string{"AAPL", "MSFT"}
	mids := map[string]int64{"AAPL": 10100, "MSFT": 41500} // price in cents

	var nextID uint64
	var inserted []models.Order

	// Seed both books with resting orders around their midpoints
	for i := 0; i < 200; i++ {
		nextID++
		symbol := symbols[rng.Intn(len(symbols))]
		side := models.Buy
		offset := -int64(rng.Intn(50)) // bids below mid
		if rng.Intn(2) == 1 {
			side = models.Sell
			offset = int64(rng.Intn(50)) // asks above mid
		}

		order := models.Order{
			ID:       nextID,
			Symbol:   symbol,
			Side:     side,
			Price:    decimal.New(mids[symbol]+offset, -2),
			Quantity: int64(rng.Intn(100) + 1),
		}
		if err := ex.Insert(&order); err != nil {
			log.Fatalf("Failed to insert order %d: %v", order.ID, err)
		}
		inserted = append(inserted, order)
	}

	// Cancel a handful of random resting orders
	cancelled := 0
	for _, order := range inserted {
		if rng.Intn(10) != 0 {
			continue
		}
		err := ex.Cancel(order.Symbol, order.ID)
		if err == nil {
			cancelled++
		} else if err != orderbook.ErrOrderNotFound {
			log.Fatalf("Failed to cancel order %d: %v", order.ID, err)
		}
	}
	fmt.Printf("Cancelled %d orders\n", cancelled)

	// Amend a few quantities in place (no loss of queue position)
	for _, order := range inserted {
		if rng.Intn(20) != 0 {
			continue
		}
		order.Quantity = int64(rng.Intn(100) + 1)
		if err := ex.Modify(&order); err != nil && err != orderbook.ErrOrderNotFound {
			log.Fatalf("Failed to modify order %d: %v", order.ID, err)
		}
	}

	// Cross the books and run a matching pass per symbol
	for _, symbol := range symbols {
		bid, _ := ex.Book(symbol).BestBid()
		ask, ok := ex.Book(symbol).BestAsk()
		if !ok {
			continue
		}
		fmt.Printf("%s: best bid %s, best ask %s\n", symbol, bid, ask)

		nextID++
		aggressor := models.Order{
			ID:       nextID,
			Symbol:   symbol,
			Side:     models.Buy,
			Price:    ask.Add(decimal.New(10, -2)),
			Quantity: 500,
		}
		if err := ex.Insert(&aggressor); err != nil {
			log.Fatalf("Failed to insert aggressor: %v", err)
		}

		trades := ex.Match(symbol)
		fmt.Printf("%s: %d trades\n", symbol, len(trades))
		for _, trade := range trades {
			fmt.Printf("  bid %d x ask %d: %d @ %s\n",
				trade.BidOrderID, trade.AskOrderID, trade.Quantity, trade.Price)
		}
	}

	// Print the top of each book
	for _, symbol := range ex.Symbols() {
		book := ex.Book(symbol)
		bids, asks := book.Depth()
		fmt.Printf("%s: %d resting orders, %d bid levels, %d ask levels\n",
			symbol, book.Len(), len(bids), len(asks))
		for i := 0; i < 5 && i < len(bids); i++ {
			fmt.Printf("  bid %s x %d (%d orders)\n", bids[i].Price, bids[i].Quantity, bids[i].Orders)
		}
		for i := 0; i < 5 && i < len(asks); i++ {
			fmt.Printf("  ask %s x %d (%d orders)\n", asks[i].Price, asks[i].Quantity, asks[i].Orders)
		}
	}
}
