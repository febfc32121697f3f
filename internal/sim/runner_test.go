package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/common"
	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/engine"
	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/sim"
)

func TestRunner_Run(t *testing.T) {
	tickers := []string{"Ticker1", "Ticker2", "Ticker3", "Ticker4"}
	eng := engine.New(tickers...)

	runner := sim.NewRunner(eng, sim.Config{
		Workers: 4,
		Orders:  500,
		Seed:    1,
	})
	require.NoError(t, runner.Run(context.Background()))

	// The run ends with a matching pass per ticker, so every book is left
	// uncrossed: another pass produces nothing.
	for _, ticker := range tickers {
		trades, err := eng.Match(ticker)
		require.NoError(t, err)
		assert.Empty(t, trades)
	}
}

func TestRunner_RejectsBadConfig(t *testing.T) {
	eng := engine.New("Ticker1")

	runner := sim.NewRunner(eng, sim.Config{Workers: 0, Orders: 10})
	assert.Error(t, runner.Run(context.Background()))

	// Nothing was submitted.
	depth, err := eng.Depth("Ticker1", common.Buy)
	require.NoError(t, err)
	assert.Zero(t, depth)
}
