package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/common"
	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/engine"
	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/utils"
)

var ErrImproperConversion = errors.New("improper type conversion")

// Config controls one simulation run.
type Config struct {
	Workers int   // concurrent submitters
	Orders  int   // total orders to generate
	Seed    int64 // generator seed
}

// Runner drives the engine with randomly generated orders from concurrent
// workers, then runs a matching pass over every ticker and reports the
// trades and the depth left behind.
type Runner struct {
	engine *engine.Engine
	cfg    Config
}

func NewRunner(eng *engine.Engine, cfg Config) *Runner {
	return &Runner{
		engine: eng,
		cfg:    cfg,
	}
}

// Run submits cfg.Orders random orders across cfg.Workers workers and then
// matches every ticker. The generator only draws values inside the valid
// range, so any submission error is a real fault and aborts the run.
func (r *Runner) Run(ctx context.Context) error {
	if r.cfg.Workers <= 0 || r.cfg.Orders < 0 {
		return fmt.Errorf("invalid simulation config: %+v", r.cfg)
	}

	t, _ := tomb.WithContext(ctx)

	pool := utils.NewWorkerPool(r.cfg.Workers)
	pool.Setup(t, r.submit)

	gen := NewGenerator(r.cfg.Seed, r.engine.Tickers())
	for i := 0; i < r.cfg.Orders; i++ {
		if !pool.AddTask(t, gen.Next()) {
			break
		}
	}
	pool.Close()

	if err := t.Wait(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	return r.report()
}

func (r *Runner) submit(_ *tomb.Tomb, task any) error {
	order, ok := task.(Order)
	if !ok {
		return ErrImproperConversion
	}
	_, err := r.engine.Submit(order.Side, order.Ticker, order.Quantity, order.Price)
	return err
}

// report matches every ticker, logging each fill and the resting depth that
// survives it.
func (r *Runner) report() error {
	var nTrades int
	for _, ticker := range r.engine.Tickers() {
		trades, err := r.engine.Match(ticker)
		if err != nil {
			return err
		}
		for _, trade := range trades {
			log.Info().
				Str("ticker", trade.Ticker).
				Int64("qty", trade.MatchQty).
				Float64("price", trade.Price).
				Str("buy", trade.BuyUUID).
				Str("sell", trade.SellUUID).
				Msg("trade")
		}
		nTrades += len(trades)

		bidDepth, err := r.engine.Depth(ticker, common.Buy)
		if err != nil {
			return err
		}
		askDepth, err := r.engine.Depth(ticker, common.Sell)
		if err != nil {
			return err
		}
		if bidDepth > 0 || askDepth > 0 {
			log.Info().
				Str("ticker", ticker).
				Int("bids", bidDepth).
				Int("asks", askDepth).
				Msg("resting depth")
		}
	}

	log.Info().Int("trades", nTrades).Msg("simulation complete")
	return nil
}
