package indicators

import (
	"fmt"

	"papertrade/market"
)

// Params selects the periods and multipliers for a full indicator
// computation. The zero value is not useful; start from DefaultParams.
type Params struct {
	MAPeriod      int
	EMAPeriod     int
	RSIPeriod     int
	MACDFast      int
	MACDSlow      int
	MACDSignal    int
	BollingerMult float64
}

// DefaultParams returns the standard charting parameters: SMA(20), EMA(12),
// RSI(14), MACD(12,26,9), Bollinger 2 standard deviations.
func DefaultParams() Params {
	return Params{
		MAPeriod:      20,
		EMAPeriod:     12,
		RSIPeriod:     14,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
		BollingerMult: 2.0,
	}
}

// Validate checks that all periods are at least 1 and the Bollinger
// multiplier is positive.
func (p Params) Validate() error {
	periods := map[string]int{
		"ma_period":   p.MAPeriod,
		"ema_period":  p.EMAPeriod,
		"rsi_period":  p.RSIPeriod,
		"macd_fast":   p.MACDFast,
		"macd_slow":   p.MACDSlow,
		"macd_signal": p.MACDSignal,
	}
	for name, v := range periods {
		if v < 1 {
			return fmt.Errorf("indicators: %s must be >= 1, got %d", name, v)
		}
	}
	if p.BollingerMult <= 0 {
		return fmt.Errorf("indicators: bollinger_mult must be positive, got %g", p.BollingerMult)
	}
	return nil
}

// required is the minimum candle count before a full Set is computed.
func (p Params) required() int {
	if p.MAPeriod > p.RSIPeriod {
		return p.MAPeriod
	}
	return p.RSIPeriod
}

// Set holds every computed indicator series for one candle series. All
// slices are the same length as the input candles; an empty Set (nil
// slices) means there was not enough history.
type Set struct {
	SMA            []float64
	EMA            []float64
	BollingerUpper []float64
	BollingerLower []float64
	RSI            []float64
	MACD           []float64
	MACDSignal     []float64
	MACDHistogram  []float64
}

// Compute builds the full indicator Set for a candle series. When the
// series is shorter than the largest required period it returns the zero
// Set rather than partial arrays.
func Compute(candles []market.Candle, p Params) Set {
	if len(candles) < p.required() {
		return Set{}
	}

	closes := market.Closes(candles)

	var set Set
	set.SMA = SMA(closes, p.MAPeriod)
	set.EMA = EMA(closes, p.EMAPeriod)
	set.BollingerUpper, set.BollingerLower = BollingerBands(closes, p.MAPeriod, p.BollingerMult)
	set.RSI = RSI(closes, p.RSIPeriod)
	set.MACD, set.MACDSignal, set.MACDHistogram = MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	return set
}
