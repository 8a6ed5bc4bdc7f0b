package core

import "time"

// PriceSample represents one observation of a traded price, at daily,
// hourly or tick resolution. Immutable once created.
type PriceSample struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// Closes projects the close prices of a sample series, oldest first.
func Closes(samples []PriceSample) []float64 {
	prices := make([]float64, len(samples))
	for i, s := range samples {
		prices[i] = s.Close
	}
	return prices
}

// PriceQuote is one side of the Thai gold quote board (bar or ornament).
// Change and ChangePercent are relative to the day's opening price.
type PriceQuote struct {
	Buy           float64   `json:"buy"`
	Sell          float64   `json:"sell"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Time          time.Time `json:"time"`
}

// GoldPrice is a full quote from the gold-price feed: both product lines
// plus the disclosure round announced by the traders association.
type GoldPrice struct {
	Bar        PriceQuote `json:"gold_bar"`
	Ornament   PriceQuote `json:"gold_ornament"`
	Round      int        `json:"round"`
	LastUpdate string     `json:"last_update"`
}

// PriceUpdate is one observed tick of the gold-price feed, appended to
// the bounded intraday history log.
type PriceUpdate struct {
	Time     time.Time  `json:"time"`
	Round    int        `json:"round"`
	Bar      PriceQuote `json:"gold_bar"`
	Ornament PriceQuote `json:"gold_ornament"`
}

// MACDValue holds the MACD line, its signal line and their difference.
type MACDValue struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the three Bollinger band levels.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// MovingAverages holds simple moving averages at the standard windows,
// each clamped to the available series length.
type MovingAverages struct {
	MA5  float64 `json:"ma5"`
	MA10 float64 `json:"ma10"`
	MA20 float64 `json:"ma20"`
	MA50 float64 `json:"ma50"`
}

// IndicatorSnapshot is the derived indicator state for one price series.
// Recomputed from scratch on demand; never mutated after creation.
type IndicatorSnapshot struct {
	RSI            float64        `json:"rsi"`
	MACD           MACDValue      `json:"macd"`
	Bollinger      BollingerBands `json:"bollinger"`
	MovingAverages MovingAverages `json:"moving_averages"`
}

// SignalType is the trading verdict.
type SignalType string

const (
	SignalBuy  SignalType = "buy"
	SignalSell SignalType = "sell"
	SignalHold SignalType = "hold"
)

// Strength grades how decisive a non-hold verdict is.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// TradingSignal is the composite verdict derived from an indicator
// snapshot and the current price. Deterministic for identical inputs.
type TradingSignal struct {
	Type            SignalType `json:"type"`
	Strength        Strength   `json:"strength"`
	Reason          string     `json:"reason"`
	Details         []string   `json:"details"`
	SupportLevel    float64    `json:"support_level"`
	ResistanceLevel float64    `json:"resistance_level"`
}

// SessionStats summarizes the gold-bar quotes seen during the current
// session. TotalChange is always relative to the day's opening price,
// not the first record surviving log eviction.
type SessionStats struct {
	MaxSell            float64 `json:"max_sell"`
	MinSell            float64 `json:"min_sell"`
	MaxBuy             float64 `json:"max_buy"`
	MinBuy             float64 `json:"min_buy"`
	TotalChange        float64 `json:"total_change"`
	TotalChangePercent float64 `json:"total_change_percent"`
	UpTicks            int     `json:"up_ticks"`
	DownTicks          int     `json:"down_ticks"`
	UpdateCount        int     `json:"update_count"`
}
