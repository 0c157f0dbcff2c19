package feed

import (
	"sync"
	"time"

	"papertrade/market"
)

type cacheEntry struct {
	quote    market.Quote
	fetched  time.Time
	hasQuote bool
}

// PriceCache holds the last quote per symbol with a freshness window.
// Get serves only quotes younger than the TTL; Last serves whatever is
// held regardless of age, for degrading gracefully when the provider is
// unreachable.
type PriceCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[market.Symbol]*cacheEntry

	now func() time.Time
}

// NewPriceCache builds a cache whose entries stay fresh for ttl.
func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		entries: make(map[market.Symbol]*cacheEntry),
		now:     time.Now,
	}
}

// Put stores a quote and stamps it fresh as of now.
func (c *PriceCache) Put(q market.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[q.Symbol] = &cacheEntry{
		quote:    q,
		fetched:  c.now(),
		hasQuote: true,
	}
}

// Get returns the symbol's quote if it is within the freshness window.
func (c *PriceCache) Get(sym market.Symbol) (market.Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[sym]
	if !ok || !e.hasQuote {
		return market.Quote{}, false
	}
	if c.now().Sub(e.fetched) >= c.ttl {
		return market.Quote{}, false
	}
	return e.quote, true
}

// Last returns the symbol's most recent quote regardless of age, and
// whether it is still fresh.
func (c *PriceCache) Last(sym market.Symbol) (q market.Quote, fresh, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.entries[sym]
	if !found || !e.hasQuote {
		return market.Quote{}, false, false
	}
	return e.quote, c.now().Sub(e.fetched) < c.ttl, true
}

// Invalidate expires the given symbols without discarding their quotes, so
// Get misses but Last still serves the stale value. With no arguments it
// expires everything.
func (c *PriceCache) Invalidate(syms ...market.Symbol) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(syms) == 0 {
		for _, e := range c.entries {
			e.fetched = time.Time{}
		}
		return
	}
	for _, sym := range syms {
		if e, ok := c.entries[sym]; ok {
			e.fetched = time.Time{}
		}
	}
}
