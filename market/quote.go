package market

import "time"

// Quote is a point-in-time price for a symbol as reported by the feed.
// Timestamp is the exchange-reported time; FetchedAt is the local clock
// reading when the quote arrived (carries Go's monotonic component, so age
// comparisons are safe across wall-clock adjustments).
type Quote struct {
	Symbol        Symbol
	Price         float64
	Change        float64
	ChangePercent float64
	Timestamp     time.Time
	FetchedAt     time.Time
}
