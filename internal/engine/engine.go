package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/common"
)

// This is the main matching engine.

// guardedBook pairs a book with the mutex serializing its mutation. Books
// for distinct tickers lock independently, so contention on one ticker never
// slows another down.
type guardedBook struct {
	mu   sync.Mutex
	book *OrderBook
}

// Engine routes orders to per-ticker books. The ticker universe is fixed at
// construction and the map is never written afterwards, so routing itself
// takes no lock.
type Engine struct {
	books map[string]*guardedBook
	seq   atomic.Uint64
}

func New(tickers ...string) *Engine {
	engine := &Engine{
		books: make(map[string]*guardedBook, len(tickers)),
	}
	for _, ticker := range tickers {
		engine.books[ticker] = &guardedBook{
			book: NewOrderBook(ticker, &engine.seq),
		}
	}
	return engine
}

// Tickers returns the configured universe.
func (engine *Engine) Tickers() []string {
	tickers := make([]string, 0, len(engine.books))
	for ticker := range engine.books {
		tickers = append(tickers, ticker)
	}
	return tickers
}

func (engine *Engine) route(ticker string) (*guardedBook, error) {
	guarded, ok := engine.books[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
	}
	return guarded, nil
}

// Submit validates and rests a new limit order, returning the id assigned
// to it. The order either rests in full or is rejected with no book change.
func (engine *Engine) Submit(side common.Side, ticker string, quantity int64, price float64) (string, error) {
	guarded, err := engine.route(ticker)
	if err != nil {
		return "", err
	}

	guarded.mu.Lock()
	id, err := guarded.book.AddOrder(side, quantity, price)
	guarded.mu.Unlock()
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("ticker", ticker).
		Stringer("side", side).
		Int64("qty", quantity).
		Float64("price", price).
		Str("uuid", id).
		Msg("order resting")
	return id, nil
}

// Match runs one matching pass over a ticker's book and returns the trades
// it produced. The pass is atomic: callers on the same ticker observe either
// the book before it or the book after it, never a half-applied state.
func (engine *Engine) Match(ticker string) ([]common.Trade, error) {
	guarded, err := engine.route(ticker)
	if err != nil {
		return nil, err
	}

	guarded.mu.Lock()
	trades := guarded.book.Match()
	guarded.mu.Unlock()

	if len(trades) > 0 {
		log.Debug().
			Str("ticker", ticker).
			Int("trades", len(trades)).
			Msg("matching pass complete")
	}
	return trades, nil
}

// Depth reports the resident order count on one side of a ticker's book.
// The read takes the same lock as mutation, so it never observes a
// mid-mutation state.
func (engine *Engine) Depth(ticker string, side common.Side) (int, error) {
	if !side.Valid() {
		return 0, fmt.Errorf("%w: side %d", ErrInvalidOrder, int(side))
	}
	guarded, err := engine.route(ticker)
	if err != nil {
		return 0, err
	}

	guarded.mu.Lock()
	defer guarded.mu.Unlock()
	return guarded.book.Depth(side), nil
}

// Levels returns a detached snapshot of one side of a ticker's book, in
// priority order. Used by reporting and tests.
func (engine *Engine) Levels(ticker string, side common.Side) ([]FlatPriceLevel, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: side %d", ErrInvalidOrder, int(side))
	}
	guarded, err := engine.route(ticker)
	if err != nil {
		return nil, err
	}

	guarded.mu.Lock()
	defer guarded.mu.Unlock()
	return guarded.book.Levels(side), nil
}
