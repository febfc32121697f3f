package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/sim"
)

func TestGenerator_Deterministic(t *testing.T) {
	tickers := []string{"AAPL", "NVDA", "MSFT"}

	a := sim.NewGenerator(42, tickers)
	b := sim.NewGenerator(42, tickers)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestGenerator_OrdersAlwaysValid(t *testing.T) {
	tickers := []string{"AAPL", "NVDA"}
	universe := map[string]bool{"AAPL": true, "NVDA": true}

	gen := sim.NewGenerator(7, tickers)
	for i := 0; i < 1000; i++ {
		order := gen.Next()
		assert.True(t, order.Side.Valid())
		assert.True(t, universe[order.Ticker])
		assert.GreaterOrEqual(t, order.Quantity, int64(1))
		assert.LessOrEqual(t, order.Quantity, int64(100))
		assert.GreaterOrEqual(t, order.Price, 10.0)
		assert.Less(t, order.Price, 1000.0)
	}
}
