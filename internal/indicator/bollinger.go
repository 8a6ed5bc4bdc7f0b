package indicator

import "github.com/naratip/goldwatch/internal/core"

// Bollinger band defaults.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerWidth  = 2.0
)

// Bollinger calculates Bollinger Bands over the trailing window. The
// period is clamped to the series length, so a short series produces
// bands around whatever data exists rather than an error.
func Bollinger(prices []float64, period int, width float64) core.BollingerBands {
	if len(prices) == 0 {
		return core.BollingerBands{}
	}

	actual := min(period, len(prices))
	window := prices[len(prices)-actual:]

	middle := SMA(prices, actual)
	dev := StdDev(window, middle)

	return core.BollingerBands{
		Upper:  middle + dev*width,
		Middle: middle,
		Lower:  middle - dev*width,
	}
}
