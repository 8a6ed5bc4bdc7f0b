// Package signal turns an indicator snapshot plus the current price
// into a buy/sell/hold verdict with a ranked rationale. Generate is a
// pure, order-sensitive rule engine: identical inputs always produce
// the identical verdict and the identical primary reason.
package signal

import (
	"math"

	"github.com/naratip/goldwatch/internal/core"
	"github.com/naratip/goldwatch/internal/indicator"
)

// RSI zones.
const (
	rsiOversold   = 30
	rsiOverbought = 70
	rsiSoftLow    = 45
	rsiSoftHigh   = 55
)

// Proximity tolerances for the support/resistance rules.
const (
	supportProximity    = 1.005
	resistanceProximity = 0.995
)

// Score margins separating strength grades.
const (
	strongMargin   = 3
	moderateMargin = 2
)

// Fallback spread around the current price when no level can be
// derived from the snapshot or the raw series.
const defaultLevelSpread = 0.02

// Rule reason texts, emitted in evaluation order. The first fired rule
// supplies the primary reason.
const (
	reasonOversold      = "RSI below 30 (oversold) - price deep in the selling zone"
	reasonOverbought    = "RSI above 70 (overbought) - price deep in the buying zone"
	reasonRSILow        = "RSI in the low range - upward bias"
	reasonRSIHigh       = "RSI in the high range - downward bias"
	reasonMACDBull      = "MACD crossed above the signal line - buy signal"
	reasonMACDBear      = "MACD crossed below the signal line - sell signal"
	reasonNearSupport   = "price near the support level - likely to bounce back up"
	reasonNearResist    = "price near the resistance level - likely to turn back down"
	reasonAboveMAs      = "price above both MA20 and MA50"
	reasonBelowMAs      = "price below both MA20 and MA50"
	reasonGoldenCross   = "MA20 above MA50 - uptrend"
	reasonDeathCross    = "MA20 below MA50 - downtrend"
	reasonNoClearSignal = "no clear signal - wait for direction"
)

// Generate derives a trading signal from the current price and an
// indicator snapshot. The raw series is optional; it is consulted only
// to rebuild support/resistance when the snapshot carries degenerate
// (zeroed) Bollinger bands.
func Generate(currentPrice float64, snap core.IndicatorSnapshot, samples []core.PriceSample) core.TradingSignal {
	support, resistance := deriveLevels(currentPrice, snap.Bollinger, samples)

	var reasons []string
	var buyScore, sellScore int

	buy := func(points int, reason string) {
		buyScore += points
		reasons = append(reasons, reason)
	}
	sell := func(points int, reason string) {
		sellScore += points
		reasons = append(reasons, reason)
	}

	// RSI zones. 45-55 is neutral and contributes nothing.
	switch rsi := snap.RSI; {
	case rsi < rsiOversold:
		buy(2, reasonOversold)
	case rsi > rsiOverbought:
		sell(2, reasonOverbought)
	case rsi < rsiSoftLow:
		buy(1, reasonRSILow)
	case rsi > rsiSoftHigh:
		sell(1, reasonRSIHigh)
	}

	// MACD confirmation: histogram and line must agree.
	if snap.MACD.Histogram > 0 && snap.MACD.MACD > snap.MACD.Signal {
		buy(1, reasonMACDBull)
	} else if snap.MACD.Histogram < 0 && snap.MACD.MACD < snap.MACD.Signal {
		sell(1, reasonMACDBear)
	}

	// Support/resistance proximity, mutually exclusive.
	if currentPrice <= support*supportProximity {
		buy(2, reasonNearSupport)
	} else if currentPrice >= resistance*resistanceProximity {
		sell(2, reasonNearResist)
	}

	// Position relative to the slower moving averages.
	mas := snap.MovingAverages
	if currentPrice > mas.MA20 && currentPrice > mas.MA50 {
		buy(1, reasonAboveMAs)
	} else if currentPrice < mas.MA20 && currentPrice < mas.MA50 {
		sell(1, reasonBelowMAs)
	}

	// Golden/death cross, only when both averages are live.
	if mas.MA20 > 0 && mas.MA50 > 0 {
		if mas.MA20 > mas.MA50 {
			buy(1, reasonGoldenCross)
		} else if mas.MA20 < mas.MA50 {
			sell(1, reasonDeathCross)
		}
	}

	verdict := core.SignalHold
	strength := core.StrengthWeak

	if buyScore > sellScore {
		verdict = core.SignalBuy
		strength = grade(buyScore - sellScore)
	} else if sellScore > buyScore {
		verdict = core.SignalSell
		strength = grade(sellScore - buyScore)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, reasonNoClearSignal)
	}

	return core.TradingSignal{
		Type:            verdict,
		Strength:        strength,
		Reason:          reasons[0],
		Details:         reasons,
		SupportLevel:    math.Round(support),
		ResistanceLevel: math.Round(resistance),
	}
}

// deriveLevels picks support/resistance from the Bollinger bands,
// falling back to the raw series range widened by half a standard
// deviation, and finally to a fixed spread around the current price.
func deriveLevels(currentPrice float64, bands core.BollingerBands, samples []core.PriceSample) (support, resistance float64) {
	support = bands.Lower
	resistance = bands.Upper

	if (support == 0 || resistance == 0) && len(samples) > 0 {
		closes := core.Closes(samples)

		maxHigh := samples[0].High
		minLow := samples[0].Low
		for _, s := range samples[1:] {
			maxHigh = math.Max(maxHigh, s.High)
			minLow = math.Min(minLow, s.Low)
		}

		mean := indicator.SMA(closes, len(closes))
		dev := indicator.StdDev(closes, mean)

		resistance = maxHigh + dev*0.5
		support = minLow - dev*0.5
	}

	if support == 0 {
		support = currentPrice * (1 - defaultLevelSpread)
	}
	if resistance == 0 {
		resistance = currentPrice * (1 + defaultLevelSpread)
	}
	return support, resistance
}

func grade(margin int) core.Strength {
	switch {
	case margin >= strongMargin:
		return core.StrengthStrong
	case margin >= moderateMargin:
		return core.StrengthModerate
	default:
		return core.StrengthWeak
	}
}
