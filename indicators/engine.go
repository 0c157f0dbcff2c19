package indicators

import (
	"sync"

	"papertrade/market"
)

type cacheKey struct {
	symbol market.Symbol
	params Params
}

// Engine memoizes indicator Sets per (symbol, params). Changing any
// parameter produces a different key, so stale results never leak across a
// parameter change; new candle data requires an explicit Invalidate for
// the symbol.
type Engine struct {
	mu    sync.Mutex
	cache map[cacheKey]Set
}

func NewEngine() *Engine {
	return &Engine{cache: make(map[cacheKey]Set)}
}

// Compute returns the indicator Set for the symbol's candles, computing
// and caching it on first use.
func (e *Engine) Compute(symbol market.Symbol, candles []market.Candle, p Params) Set {
	key := cacheKey{symbol: symbol, params: p}

	e.mu.Lock()
	defer e.mu.Unlock()

	if set, ok := e.cache[key]; ok {
		return set
	}
	set := Compute(candles, p)
	e.cache[key] = set
	return set
}

// Invalidate drops every cached Set for the given symbols. Call it when
// fresh candle data arrives.
func (e *Engine) Invalidate(symbols ...market.Symbol) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for key := range e.cache {
		for _, sym := range symbols {
			if key.symbol == sym {
				delete(e.cache, key)
				break
			}
		}
	}
}
