package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/engine"
	"github.com/keerthipriyankakalva/Stock-Trading-Engine/internal/sim"
)

const defaultTickers = 1024

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if level, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	cfg := sim.Config{
		Workers: envInt("WORKERS", 5),
		Orders:  envInt("ORDERS", 1000),
		Seed:    int64(envInt("SEED", 1)),
	}

	eng := engine.New(tickerUniverse()...)
	runner := sim.NewRunner(eng, cfg)
	if err := runner.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

// tickerUniverse reads TICKERS as a comma-separated list, defaulting to the
// Ticker1..Ticker1024 universe the simulation has always run against.
func tickerUniverse() []string {
	if raw := os.Getenv("TICKERS"); raw != "" {
		return strings.Split(raw, ",")
	}
	tickers := make([]string, defaultTickers)
	for i := range tickers {
		tickers[i] = fmt.Sprintf("Ticker%d", i+1)
	}
	return tickers
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
