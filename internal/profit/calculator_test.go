package profit

import (
	"errors"
	"math"
	"testing"

	"github.com/naratip/goldwatch/internal/core"
)

func TestCalculate_BahtWeight(t *testing.T) {
	res, err := Calculate(Input{
		BuyPrice:     70000,
		CurrentPrice: 71500,
		Weight:       2,
		Unit:         UnitBahtWeight,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if res.TotalCost != 140000 {
		t.Errorf("cost = %f, want 140000", res.TotalCost)
	}
	if res.TotalValue != 143000 {
		t.Errorf("value = %f, want 143000", res.TotalValue)
	}
	if res.ProfitLoss != 3000 {
		t.Errorf("P/L = %f, want 3000", res.ProfitLoss)
	}
	if math.Abs(res.ProfitLossPercent-3000.0/140000*100) > 1e-9 {
		t.Errorf("P/L%% = %f", res.ProfitLossPercent)
	}
}

func TestCalculate_GramConversion(t *testing.T) {
	res, err := Calculate(Input{
		BuyPrice:     70000,
		CurrentPrice: 70000,
		Weight:       GramsPerBahtWeight, // exactly one baht-weight
		Unit:         UnitGram,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if math.Abs(res.TotalCost-70000) > 1e-6 {
		t.Errorf("cost = %f, want 70000 for one baht-weight", res.TotalCost)
	}
	if res.ProfitLoss != 0 {
		t.Errorf("P/L = %f, want 0 at the same price", res.ProfitLoss)
	}
}

func TestCalculate_Loss(t *testing.T) {
	res, err := Calculate(Input{
		BuyPrice:     72000,
		CurrentPrice: 70000,
		Weight:       1,
		Unit:         UnitBahtWeight,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if res.ProfitLoss != -2000 {
		t.Errorf("P/L = %f, want -2000", res.ProfitLoss)
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	cases := []Input{
		{BuyPrice: 0, CurrentPrice: 70000, Weight: 1, Unit: UnitBahtWeight},
		{BuyPrice: 70000, CurrentPrice: 70000, Weight: 0, Unit: UnitBahtWeight},
		{BuyPrice: 70000, CurrentPrice: 70000, Weight: 1, Unit: WeightUnit("ounce")},
	}

	for i, in := range cases {
		if _, err := Calculate(in); !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}
