package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMASeedAndWindow(t *testing.T) {
	t.Parallel()

	got := SMA([]float64{10, 20, 30, 40}, 2)
	// First element seeded with the raw price, rest are 2-window means.
	assert.Equal(t, []float64{10, 15, 25, 35}, got)
}

func TestSMAFullWindow(t *testing.T) {
	t.Parallel()

	got := SMA([]float64{1, 2, 3, 4, 5}, 5)
	assert.Equal(t, []float64{1, 2, 3, 4, 3}, got)
}

func TestSMALengthMatchesInput(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 30; n++ {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = float64(i + 1)
		}
		assert.Len(t, SMA(prices, 7), n, "n=%d", n)
		assert.Len(t, EMA(prices, 7), n, "n=%d", n)
	}
}

func TestEMARecurrence(t *testing.T) {
	t.Parallel()

	prices := []float64{100, 110, 105, 120}
	period := 3
	k := 2.0 / float64(period+1)

	got := EMA(prices, period)

	assert.Equal(t, prices[0], got[0])
	for i := 1; i < len(prices); i++ {
		want := prices[i]*k + got[i-1]*(1-k)
		assert.InDelta(t, want, got[i], 1e-12, "i=%d", i)
	}
}

func TestBollingerSeedAndBands(t *testing.T) {
	t.Parallel()

	prices := []float64{10, 12, 14, 16, 18}
	upper, lower := BollingerBands(prices, 3, 2.0)

	assert.Len(t, upper, len(prices))
	assert.Len(t, lower, len(prices))

	// Warm-up indices equal the raw price on both bands.
	assert.Equal(t, prices[0], upper[0])
	assert.Equal(t, prices[0], lower[0])
	assert.Equal(t, prices[1], upper[1])
	assert.Equal(t, prices[1], lower[1])

	sma := SMA(prices, 3)
	for i := 2; i < len(prices); i++ {
		// Bands are symmetric around the SMA.
		assert.InDelta(t, sma[i], (upper[i]+lower[i])/2, 1e-12, "i=%d", i)
		assert.GreaterOrEqual(t, upper[i], lower[i], "i=%d", i)
	}

	// Equal prices in the window collapse both bands onto the SMA.
	upper, lower = BollingerBands([]float64{5, 5, 5}, 3, 2.0)
	assert.Equal(t, 5.0, upper[2])
	assert.Equal(t, 5.0, lower[2])
}

func TestRSISeeds(t *testing.T) {
	t.Parallel()

	prices := []float64{10, 11, 12, 13, 14, 15}
	got := RSI(prices, 4)

	// Index 0 and everything before a full period is neutral.
	for i := 0; i < 4; i++ {
		assert.Equal(t, 50.0, got[i], "i=%d", i)
	}
	// Monotonically rising prices have zero losses.
	assert.Equal(t, 100.0, got[4])
	assert.Equal(t, 100.0, got[5])
}

func TestRSIRange(t *testing.T) {
	t.Parallel()

	prices := []float64{44, 47, 45, 50, 43, 48, 46, 52, 41, 49, 45, 47, 50, 44, 46, 48}
	got := RSI(prices, 5)

	assert.Len(t, got, len(prices))
	for i, v := range got {
		assert.GreaterOrEqual(t, v, 0.0, "i=%d", i)
		assert.LessOrEqual(t, v, 100.0, "i=%d", i)
	}
}

func TestRSIFalling(t *testing.T) {
	t.Parallel()

	prices := []float64{20, 18, 16, 14, 12, 10}
	got := RSI(prices, 3)

	// All losses, no gains: RS is 0, RSI is 0.
	assert.Equal(t, 0.0, got[5])
}

func TestMACDIsEMADifference(t *testing.T) {
	t.Parallel()

	prices := []float64{10, 12, 11, 15, 14, 16, 18, 17, 19, 22}
	macd, signal, hist := MACD(prices, 3, 6, 4)

	fast := EMA(prices, 3)
	slow := EMA(prices, 6)

	assert.Len(t, macd, len(prices))
	assert.Len(t, signal, len(prices))
	assert.Len(t, hist, len(prices))

	for i := range prices {
		assert.InDelta(t, fast[i]-slow[i], macd[i], 1e-12, "i=%d", i)
		assert.InDelta(t, macd[i]-signal[i], hist[i], 1e-12, "i=%d", i)
	}
	assert.InDelta(t, EMA(macd, 4)[len(prices)-1], signal[len(prices)-1], 1e-12)
}
