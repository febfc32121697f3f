package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/btree"

	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/common"
)

// PriceLevel groups resting orders sharing a limit price. Orders are kept in
// arrival order as they will be push-back'd.
type PriceLevel struct {
	priceLevel float64
	orders     []*common.Order
}

type PriceLevels = btree.BTreeG[*PriceLevel]

// OrderBook holds the resting interest for a single ticker.
//
// Both sides stay continuously sorted: bids greatest price first, asks least
// price first, FIFO within a level. The book itself is not safe for
// concurrent use; Engine serializes access per book.
type OrderBook struct {
	ticker string

	// Price levels to orders sat on the price level, sorted by time added.
	bids *PriceLevels
	asks *PriceLevels

	// Some book keeping
	nBuyOrders  int // Track the number of bids in the book.
	nSellOrders int // Track the number of asks in the book.

	// Shared arrival counter, owned by the engine so sequencing stays
	// monotonic across every book.
	seq *atomic.Uint64
}

func NewOrderBook(ticker string, seq *atomic.Uint64) *OrderBook {
	// Sorted greatest first.
	bids := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.priceLevel > b.priceLevel
	})
	// Sorted least first.
	asks := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.priceLevel < b.priceLevel
	})
	return &OrderBook{
		ticker: ticker,
		bids:   bids,
		asks:   asks,
		seq:    seq,
	}
}

// AddOrder validates and rests a new limit order on the book, returning the
// id assigned to it. Validation happens strictly before any mutation, so a
// rejected order leaves the book exactly as it was.
func (book *OrderBook) AddOrder(side common.Side, quantity int64, price float64) (string, error) {
	if quantity <= 0 {
		return "", fmt.Errorf("%w: quantity %d", ErrInvalidOrder, quantity)
	}
	if price <= 0 {
		return "", fmt.Errorf("%w: price %f", ErrInvalidOrder, price)
	}
	if !side.Valid() {
		return "", fmt.Errorf("%w: side %d", ErrInvalidOrder, int(side))
	}

	order := &common.Order{
		UUID:          uuid.NewString(),
		Ticker:        book.ticker,
		Side:          side,
		LimitPrice:    price,
		Quantity:      quantity,
		TotalQuantity: quantity,
		Seq:           book.seq.Add(1),
		Timestamp:     time.Now(),
	}

	var levels *PriceLevels
	switch side {
	case common.Buy:
		levels = book.bids
		book.nBuyOrders++
	case common.Sell:
		levels = book.asks
		book.nSellOrders++
	}

	// Levels comparator only accounts for price levels, so we create a dummy
	// price level for the search.
	level, ok := levels.GetMut(&PriceLevel{priceLevel: price})
	if ok {
		// If the price level already exists, just append onto the existing orders.
		level.orders = append(level.orders, order)
	} else {
		// Otherwise, if the price level does not exist, create the price level.
		levels.Set(&PriceLevel{
			priceLevel: price,
			orders:     []*common.Order{order},
		})
	}

	return order.UUID, nil
}

// Match consumes the top of book price levels while they cross (i.e.,
// bid >= ask). While these orders cross, we match orders in
// price-time-priority and emit one trade per fill, oldest first.
//
// Execution price policy: every fill executes at the ask leg's limit price,
// the lower of the two crossing prices. The buyer never pays more than their
// limit and the seller receives exactly what they quoted. The policy is
// uniform across all fills and pinned by the scenario tests.
//
// A completed pass always leaves the book uncrossed, so calling Match again
// with no new orders in between returns nothing.
func (book *OrderBook) Match() []common.Trade {
	var trades []common.Trade

	// Consume crossing levels. Each pass either empties a side or stops at
	// the first non-crossing pair, so the loop always terminates.
	for {
		bestBid, bidOk := book.bids.MinMut()
		bestAsk, askOk := book.asks.MinMut()

		// If either side is empty, or prices don't cross, we are done.
		if !bidOk || !askOk || bestBid.priceLevel < bestAsk.priceLevel {
			break
		}

		// While there are still orders on either level, move forward on the
		// orders. FIFO within the level is the tie-break for equal prices.
		var aIdx, bIdx int
		for aIdx < len(bestAsk.orders) && bIdx < len(bestBid.orders) {
			askOrder := bestAsk.orders[aIdx]
			bidOrder := bestBid.orders[bIdx]

			matchQty := min(askOrder.Quantity, bidOrder.Quantity)
			askOrder.Quantity -= matchQty
			bidOrder.Quantity -= matchQty

			trades = append(trades, common.Trade{
				BuyUUID:   bidOrder.UUID,
				SellUUID:  askOrder.UUID,
				Ticker:    book.ticker,
				MatchQty:  matchQty,
				Price:     askOrder.LimitPrice,
				Timestamp: time.Now(),
			})

			// Move forward. At least one of the two hit zero, so the inner
			// loop always advances.
			if askOrder.Quantity == 0 {
				aIdx++
				book.nSellOrders--
			}
			if bidOrder.Quantity == 0 {
				bIdx++
				book.nBuyOrders--
			}
		}

		// Slice off consumed orders, then drop emptied levels so no
		// zero-quantity order outlives the pass.
		if aIdx > 0 {
			bestAsk.orders = bestAsk.orders[aIdx:]
		}
		if bIdx > 0 {
			bestBid.orders = bestBid.orders[bIdx:]
		}
		if len(bestAsk.orders) == 0 {
			book.asks.Delete(bestAsk)
		}
		if len(bestBid.orders) == 0 {
			book.bids.Delete(bestBid)
		}
	}

	return trades
}

// Depth reports the number of resident orders on one side of the book.
func (book *OrderBook) Depth(side common.Side) int {
	if side == common.Buy {
		return book.nBuyOrders
	}
	return book.nSellOrders
}

// FlatPriceLevel is a detached copy of one price level, used for inspection
// and reporting.
type FlatPriceLevel struct {
	PriceLevel float64
	Orders     []common.Order
}

// Levels flattens one side of the book in priority order: bids greatest
// price first, asks least price first. Orders are copied out by value.
func (book *OrderBook) Levels(side common.Side) []FlatPriceLevel {
	levels := book.bids
	if side == common.Sell {
		levels = book.asks
	}

	flat := make([]FlatPriceLevel, 0, levels.Len())
	levels.Scan(func(level *PriceLevel) bool {
		orders := make([]common.Order, len(level.orders))
		for i, order := range level.orders {
			orders[i] = *order
		}
		flat = append(flat, FlatPriceLevel{
			PriceLevel: level.priceLevel,
			Orders:     orders,
		})
		return true
	})
	return flat
}
