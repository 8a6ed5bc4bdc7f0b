package indicator

import "github.com/naratip/goldwatch/internal/core"

// MACD period caps. Short series shrink the effective periods before
// hitting the degenerate fallback below.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACD calculates the MACD line, signal line and histogram, with the
// periods scaled down for short series: fast = min(12, n/2),
// slow = min(26, floor(0.8n)), signal = min(9, n/3).
//
// When even the scaled periods collapse (fast < 2 or slow <= fast),
// the result is a low-confidence estimate built from the most recent
// price delta rather than an error: short series always produce a
// trend direction, just a weak one.
func MACD(prices []float64) core.MACDValue {
	n := len(prices)

	fast := min(MACDFastPeriod, n/2)
	slow := min(MACDSlowPeriod, int(float64(n)*0.8))
	signalPeriod := min(MACDSignalPeriod, n/3)

	if fast < 2 || slow <= fast {
		var recent float64
		if n > 1 {
			recent = prices[n-1] - prices[n-2]
		}
		return core.MACDValue{
			MACD:      recent,
			Signal:    recent * 0.5,
			Histogram: recent * 0.5,
		}
	}

	macd := EMA(prices, fast) - EMA(prices, slow)

	// The signal line is the EMA of the MACD values computed over the
	// growing tail of the series, starting once the slow period fills.
	macdSeries := make([]float64, 0, n-slow)
	for i := slow; i < n; i++ {
		window := prices[:i+1]
		macdSeries = append(macdSeries, EMA(window, fast)-EMA(window, slow))
	}

	signal := macd * 0.5
	if len(macdSeries) > 0 {
		signal = EMA(macdSeries, min(signalPeriod, len(macdSeries)))
	}

	return core.MACDValue{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
	}
}
