// Package indicator computes batch technical indicators over a price
// series. Every function is pure and degrades gracefully on short
// series: insufficient history yields neutral sentinel values, never
// an error.
package indicator

import "github.com/naratip/goldwatch/internal/core"

// MinSamples is the minimum series length before indicators carry any
// meaning. Below this Compute short-circuits to a neutral snapshot
// instead of emitting noise from two or three points.
const MinSamples = 5

// Moving-average windows reported in every snapshot.
const (
	MA5Period  = 5
	MA10Period = 10
	MA20Period = 20
	MA50Period = 50
)

// Compute derives the full indicator snapshot from a price series,
// oldest sample first. The caller guarantees ascending time order;
// Compute does not re-sort.
func Compute(samples []core.PriceSample) core.IndicatorSnapshot {
	prices := core.Closes(samples)

	if len(prices) < MinSamples {
		return neutralSnapshot(prices)
	}

	n := len(prices)

	return core.IndicatorSnapshot{
		RSI:       RSI(prices, min(DefaultRSIPeriod, n-1)),
		MACD:      MACD(prices),
		Bollinger: Bollinger(prices, min(DefaultBollingerPeriod, n), DefaultBollingerWidth),
		MovingAverages: core.MovingAverages{
			MA5:  SMA(prices, min(MA5Period, n)),
			MA10: SMA(prices, min(MA10Period, n)),
			MA20: SMA(prices, min(MA20Period, n)),
			MA50: SMA(prices, min(MA50Period, n)),
		},
	}
}

// neutralSnapshot is the fixed degenerate output for sparse series:
// neutral RSI, zeroed MACD and bands, every MA pinned to the last
// close (or 0 for an empty series).
func neutralSnapshot(prices []float64) core.IndicatorSnapshot {
	var last float64
	if len(prices) > 0 {
		last = prices[len(prices)-1]
	}

	return core.IndicatorSnapshot{
		RSI: 50,
		MovingAverages: core.MovingAverages{
			MA5:  last,
			MA10: last,
			MA20: last,
			MA50: last,
		},
	}
}
