package indicator

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSI calculates the Relative Strength Index over the trailing deltas.
// The period is clamped to len(prices)-1; with fewer than two prices
// there is no delta to measure and the neutral value 50 is returned.
// The result is always within [0, 100].
func RSI(prices []float64, period int) float64 {
	actual := min(period, len(prices)-1)
	if actual < 1 {
		return 50
	}

	var gains, losses float64
	for i := 1; i <= actual; i++ {
		change := prices[len(prices)-i] - prices[len(prices)-i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(actual)
	avgLoss := losses / float64(actual)

	// A flat window has no losses to divide by.
	if avgLoss == 0 {
		if avgGain > 0 {
			return 100
		}
		return 50
	}

	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)

	return max(0, min(100, rsi))
}
