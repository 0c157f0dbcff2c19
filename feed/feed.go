// Package feed defines the market-data provider contract and the caching
// layer in front of it. Providers are remote and slow; everything the rest
// of the program reads goes through the cache, which serves fresh values
// inside a TTL window and falls back to the last known value when the
// provider is down.
package feed

import (
	"context"
	"errors"

	"papertrade/market"
)

// Feed fetches live market data for a symbol.
type Feed interface {
	// FetchQuote returns the current price snapshot for the symbol.
	FetchQuote(ctx context.Context, sym market.Symbol) (market.Quote, error)

	// FetchCandles returns up to limit most-recent candles at the given
	// interval, oldest first.
	FetchCandles(ctx context.Context, sym market.Symbol, interval string, limit int) ([]market.Candle, error)
}

// ErrNoQuote is returned when neither a fresh nor a stale quote exists for
// a symbol.
var ErrNoQuote = errors.New("no quote available")

// ErrRefreshInFlight is returned when a refresh is requested while a
// previous one is still running.
var ErrRefreshInFlight = errors.New("refresh already in flight")
