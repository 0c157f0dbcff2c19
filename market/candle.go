// Package market defines the shared market data types: symbols, candles,
// and quotes. Everything downstream (ledger, trade, indicators, feed)
// speaks these types.
package market

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data.
// Series are ordered ascending by Time with no duplicate timestamps.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the closing prices of a candle series, preserving order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
