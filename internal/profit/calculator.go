// Package profit computes profit/loss for a gold holding against the
// current quote.
package profit

import "github.com/naratip/goldwatch/internal/core"

// WeightUnit is the unit the holding is measured in.
type WeightUnit string

const (
	UnitBahtWeight WeightUnit = "baht"
	UnitGram       WeightUnit = "gram"
)

// GramsPerBahtWeight converts between the Thai baht-weight unit and
// grams: one baht-weight of gold is 15.244 g.
const GramsPerBahtWeight = 15.244

// Input describes a gold holding.
type Input struct {
	BuyPrice     float64    `json:"buy_price"`     // per baht-weight
	CurrentPrice float64    `json:"current_price"` // per baht-weight
	Weight       float64    `json:"weight"`
	Unit         WeightUnit `json:"unit"`
}

// Result is the valuation of a holding.
type Result struct {
	Input
	TotalCost         float64 `json:"total_cost"`
	TotalValue        float64 `json:"total_value"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
}

// Calculate values the holding. Prices are per baht-weight; gram
// weights are converted first.
func Calculate(in Input) (*Result, error) {
	if in.BuyPrice <= 0 || in.Weight <= 0 {
		return nil, core.ErrInvalidInput
	}
	if in.Unit != UnitBahtWeight && in.Unit != UnitGram {
		return nil, core.ErrInvalidInput
	}

	weight := in.Weight
	if in.Unit == UnitGram {
		weight = in.Weight / GramsPerBahtWeight
	}

	cost := in.BuyPrice * weight
	value := in.CurrentPrice * weight
	pl := value - cost

	return &Result{
		Input:             in,
		TotalCost:         cost,
		TotalValue:        value,
		ProfitLoss:        pl,
		ProfitLossPercent: pl / cost * 100,
	}, nil
}
