package indicator

import "math"

// SMA calculates the Simple Moving Average over the trailing window.
// With fewer prices than the period it returns the most recent price,
// or 0 for an empty series.
func SMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < period {
		return prices[len(prices)-1]
	}

	var sum float64
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period)
}

// EMA calculates the Exponential Moving Average of the full series,
// seeded with the simple average of the first effective period. The
// period is clamped to the series length; a clamped period of 1 or
// less degenerates to the most recent price.
func EMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}

	actual := min(period, len(prices))
	if actual <= 1 {
		return prices[len(prices)-1]
	}

	multiplier := 2.0 / float64(actual+1)

	var sum float64
	for _, p := range prices[:actual] {
		sum += p
	}
	ema := sum / float64(actual)

	for _, p := range prices[actual:] {
		ema = (p-ema)*multiplier + ema
	}
	return ema
}

// StdDev calculates the population standard deviation (divide by N)
// of prices around the given mean.
func StdDev(prices []float64, mean float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	var sum float64
	for _, p := range prices {
		d := p - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(prices)))
}
