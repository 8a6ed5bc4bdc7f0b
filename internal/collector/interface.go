// Package collector defines the market-data sources the analysis core
// consumes: the Thai gold price board and a candlestick feed. The core
// trusts ordering and unit consistency of whatever a source returns,
// but not completeness.
package collector

import "github.com/naratip/goldwatch/internal/core"

// GoldSource fetches the latest Thai gold board quote.
type GoldSource interface {
	Name() string
	FetchLatest() (*core.GoldPrice, error)
}

// CandleSource fetches candlestick history and the current spot price
// for a symbol.
type CandleSource interface {
	Name() string
	FetchKlines(symbol, interval string, limit int) ([]core.PriceSample, error)
	FetchPrice(symbol string) (float64, error)
}
