package sim

import (
	"math/rand"

	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/common"
)

// Order describes one generated submission.
type Order struct {
	Side     common.Side
	Ticker   string
	Quantity int64
	Price    float64
}

// Generator produces random limit orders over a fixed ticker universe. The
// same seed always yields the same order stream, so simulation runs are
// reproducible.
//
// Not safe for concurrent use; the runner draws from it on one goroutine and
// fans the orders out to workers.
type Generator struct {
	rng     *rand.Rand
	tickers []string
}

func NewGenerator(seed int64, tickers []string) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		tickers: tickers,
	}
}

// Next draws the next random order: either side, any ticker in the universe,
// quantity in [1, 100], price in [10, 1000).
func (g *Generator) Next() Order {
	side := common.Buy
	if g.rng.Intn(2) == 1 {
		side = common.Sell
	}
	return Order{
		Side:     side,
		Ticker:   g.tickers[g.rng.Intn(len(g.tickers))],
		Quantity: int64(g.rng.Intn(100)) + 1,
		Price:    10 + g.rng.Float64()*990,
	}
}
