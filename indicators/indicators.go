// Package indicators provides technical analysis indicators computed over
// closing-price series.
//
// Every function returns a slice exactly as long as its input so chart
// overlays stay index-aligned with the candles; indices inside the warm-up
// window carry defined seed values instead of being omitted. The seed
// policy (raw price for SMA/Bollinger, neutral 50 for RSI) is intentional
// and part of the contract, not a partial-window average.
package indicators

import "math"

// SMA calculates the Simple Moving Average for the given period.
//
// Indices before the first full window are seeded with the raw price at
// that index. period must be >= 1.
func SMA(prices []float64, period int) []float64 {
	sma := make([]float64, len(prices))
	for i := range prices {
		if i < period-1 {
			sma[i] = prices[i]
			continue
		}
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += prices[j]
		}
		sma[i] = sum / float64(period)
	}
	return sma
}

// EMA calculates the Exponential Moving Average for the given period.
//
// The series is defined from index 0 (seeded with the first price); there
// is no separate warm-up window. period must be >= 1.
func EMA(prices []float64, period int) []float64 {
	ema := make([]float64, len(prices))
	if len(prices) == 0 {
		return ema
	}
	k := 2.0 / float64(period+1)
	ema[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		ema[i] = prices[i]*k + ema[i-1]*(1-k)
	}
	return ema
}

// BollingerBands calculates upper and lower bands at mult population
// standard deviations around the period SMA. Warm-up indices carry the raw
// price on both bands, matching the SMA seed policy.
func BollingerBands(prices []float64, period int, mult float64) (upper, lower []float64) {
	upper = make([]float64, len(prices))
	lower = make([]float64, len(prices))
	sma := SMA(prices, period)

	for i := range prices {
		if i < period-1 {
			upper[i] = prices[i]
			lower[i] = prices[i]
			continue
		}
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := prices[j] - sma[i]
			sum += d * d
		}
		sigma := math.Sqrt(sum / float64(period))
		upper[i] = sma[i] + sigma*mult
		lower[i] = sma[i] - sigma*mult
	}
	return upper, lower
}

// RSI calculates the Relative Strength Index using simple (non-Wilder)
// averages of the trailing period gains and losses. Index 0 and every
// index before a full period are seeded with the neutral value 50. Output
// values are always within [0, 100].
func RSI(prices []float64, period int) []float64 {
	rsi := make([]float64, len(prices))
	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))

	for i := range prices {
		if i == 0 {
			rsi[i] = 50
			continue
		}
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}

		if i < period {
			rsi[i] = 50
			continue
		}

		var avgGain, avgLoss float64
		for j := i - period + 1; j <= i; j++ {
			avgGain += gains[j]
			avgLoss += losses[j]
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		if avgLoss == 0 {
			rsi[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		rsi[i] = 100 - 100/(1+rs)
	}
	return rsi
}

// MACD calculates the Moving Average Convergence Divergence line, its
// signal line, and the histogram (macd - signal).
func MACD(prices []float64, fast, slow, signal int) (macd, signalLine, histogram []float64) {
	fastEMA := EMA(prices, fast)
	slowEMA := EMA(prices, slow)

	macd = make([]float64, len(prices))
	for i := range prices {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine = EMA(macd, signal)

	histogram = make([]float64, len(prices))
	for i := range macd {
		histogram[i] = macd[i] - signalLine[i]
	}
	return macd, signalLine, histogram
}
