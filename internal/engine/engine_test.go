package engine_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/common"
	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/engine"
)

func TestEngine_UnknownTicker(t *testing.T) {
	eng := engine.New("AAPL", "NVDA")

	_, err := eng.Submit(Buy, "TSLA", 10, 50)
	assert.ErrorIs(t, err, engine.ErrUnknownTicker)

	_, err = eng.Match("TSLA")
	assert.ErrorIs(t, err, engine.ErrUnknownTicker)

	_, err = eng.Depth("TSLA", Buy)
	assert.ErrorIs(t, err, engine.ErrUnknownTicker)
}

func TestEngine_DepthInvalidSide(t *testing.T) {
	eng := engine.New("AAPL")

	_, err := eng.Depth("AAPL", Side(7))
	assert.ErrorIs(t, err, engine.ErrInvalidOrder)
}

func TestEngine_Tickers(t *testing.T) {
	eng := engine.New("AAPL", "NVDA")
	assert.ElementsMatch(t, []string{"AAPL", "NVDA"}, eng.Tickers())
}

func TestEngine_IndependentBooks(t *testing.T) {
	eng := engine.New("AAPL", "NVDA")

	_, err := eng.Submit(Buy, "AAPL", 10, 50)
	require.NoError(t, err)
	_, err = eng.Submit(Sell, "NVDA", 10, 45)
	require.NoError(t, err)

	// Crossing prices on different tickers never trade against each other.
	for _, ticker := range []string{"AAPL", "NVDA"} {
		trades, err := eng.Match(ticker)
		require.NoError(t, err)
		assert.Empty(t, trades)
	}

	depth, err := eng.Depth("AAPL", Buy)
	require.NoError(t, err)
	assert.Equal(t, 1, depth)
	depth, err = eng.Depth("AAPL", Sell)
	require.NoError(t, err)
	assert.Equal(t, 0, depth)
	depth, err = eng.Depth("NVDA", Sell)
	require.NoError(t, err)
	assert.Equal(t, 1, depth)
}

func TestEngine_ConcurrentSubmit(t *testing.T) {
	const (
		submitters      = 8
		ordersPerWorker = 200
	)
	tickers := []string{"AAPL", "NVDA", "MSFT", "AMZN"}
	eng := engine.New(tickers...)

	// Hammer every book from every worker at once. Each worker alternates
	// sides at a crossing price so matching has real work afterwards.
	var wg sync.WaitGroup
	for w := 0; w < submitters; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < ordersPerWorker; i++ {
				side := Buy
				if (w+i)%2 == 1 {
					side = Sell
				}
				ticker := tickers[i%len(tickers)]
				if _, err := eng.Submit(side, ticker, 10, 100); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	// Every submission landed on exactly one book.
	total := 0
	for _, ticker := range tickers {
		for _, side := range []Side{Buy, Sell} {
			depth, err := eng.Depth(ticker, side)
			require.NoError(t, err)
			total += depth
		}
	}
	assert.Equal(t, submitters*ordersPerWorker, total)

	// Everything crosses at 100, so per ticker one side is fully consumed
	// and matched quantity accounts for every filled order.
	for _, ticker := range tickers {
		trades, err := eng.Match(ticker)
		require.NoError(t, err)

		var matched int64
		for _, trade := range trades {
			assert.Equal(t, 100.0, trade.Price)
			matched += trade.MatchQty
		}

		bidDepth, err := eng.Depth(ticker, Buy)
		require.NoError(t, err)
		askDepth, err := eng.Depth(ticker, Sell)
		require.NoError(t, err)
		assert.Zero(t, min(bidDepth, askDepth), "book must not stay crossed")

		resident := int64(0)
		for _, side := range []Side{Buy, Sell} {
			levels, err := eng.Levels(ticker, side)
			require.NoError(t, err)
			for _, level := range levels {
				for _, order := range level.Orders {
					resident += order.Quantity
				}
			}
		}
		// 2*matched covers both legs of every fill.
		submitted := int64(submitters * ordersPerWorker / len(tickers) * 10)
		assert.Equal(t, submitted, resident+2*matched)
	}
}
