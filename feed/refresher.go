package feed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"papertrade/indicators"
	"papertrade/market"
)

// Refresher pulls quotes and candles for a set of symbols through a Feed
// and lands them in the price cache. Only one refresh runs at a time; a
// request that arrives while one is in flight is rejected rather than
// queued, since the running refresh will deliver equally current data.
type Refresher struct {
	feed     Feed
	cache    *PriceCache
	engine   *indicators.Engine
	interval string
	limit    int
	log      *slog.Logger

	busy atomic.Bool
}

// NewRefresher wires a refresher to its feed and cache. A nil engine
// disables indicator invalidation on candle refreshes.
func NewRefresher(f Feed, cache *PriceCache, engine *indicators.Engine, interval string, limit int) *Refresher {
	return &Refresher{
		feed:     f,
		cache:    cache,
		engine:   engine,
		interval: interval,
		limit:    limit,
		log:      slog.Default(),
	}
}

// SetLogger replaces the refresher's logger.
func (r *Refresher) SetLogger(log *slog.Logger) { r.log = log }

// RefreshQuotes fetches current quotes for all symbols concurrently and
// stores each success as it lands. A symbol whose fetch fails keeps its
// previous cached quote; the first failure is reported after all fetches
// finish.
func (r *Refresher) RefreshQuotes(ctx context.Context, syms []market.Symbol) error {
	if !r.busy.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer r.busy.Store(false)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, sym := range syms {
		wg.Add(1)
		go func(sym market.Symbol) {
			defer wg.Done()

			q, err := r.feed.FetchQuote(ctx, sym)
			if err != nil {
				r.log.Warn("quote refresh failed", "symbol", sym.String(), "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			r.cache.Put(q)
		}(sym)
	}
	wg.Wait()
	return firstErr
}

// RefreshCandles fetches a fresh candle window for the symbol and drops
// any memoized indicator values for it, since they were computed from the
// old window.
func (r *Refresher) RefreshCandles(ctx context.Context, sym market.Symbol) ([]market.Candle, error) {
	candles, err := r.feed.FetchCandles(ctx, sym, r.interval, r.limit)
	if err != nil {
		return nil, err
	}
	if r.engine != nil {
		r.engine.Invalidate(sym)
	}
	return candles, nil
}

// Quote returns the freshest quote the cache can serve for the symbol,
// falling back to a stale value when the provider has not answered within
// the TTL. The fresh result reports whether the value is within the
// window.
func (r *Refresher) Quote(sym market.Symbol) (q market.Quote, fresh bool, err error) {
	q, fresh, ok := r.cache.Last(sym)
	if !ok {
		return market.Quote{}, false, ErrNoQuote
	}
	if !fresh {
		r.log.Debug("serving stale quote", "symbol", sym.String())
	}
	return q, fresh, nil
}
