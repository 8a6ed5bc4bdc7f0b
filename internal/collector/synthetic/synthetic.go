// Package synthetic generates random-walk price series to backfill
// charts when no real history exists. It lives outside the analytical
// core on purpose: indicator math is deterministic and must never
// depend on a seed, so the generator takes an explicit rand source
// instead of the global one.
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"github.com/naratip/goldwatch/internal/core"
)

// Intraday volatility and wick parameters tuned to gold's typical
// 0.1-0.3% hourly movement.
const (
	hourlyVolatility = 0.0015
	dailyVolatility  = 0.02
	wickSpread       = 0.002
	marketOpenHour   = 9
)

// Generator produces synthetic price series around a base price.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates a generator with the given seed.
func New(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Intraday generates hourly candles from market open to now, with a
// random walk drifting toward the base price.
func (g *Generator) Intraday(basePrice float64) []core.PriceSample {
	now := g.now()
	endHour := now.Hour()
	if endHour < marketOpenHour {
		endHour = marketOpenHour
	}

	openPrice := basePrice * (1 + (g.rng.Float64()-0.5)*0.01)
	price := openPrice

	hours := endHour - marketOpenHour + 1
	samples := make([]core.PriceSample, 0, hours)

	for hour := marketOpenHour; hour <= endHour; hour++ {
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if hour == endHour {
			at = time.Date(now.Year(), now.Month(), now.Day(), hour, now.Minute(), 0, 0, now.Location())
		}

		trend := (basePrice - openPrice) / float64(hours) / openPrice
		walk := (g.rng.Float64() - 0.5) * hourlyVolatility * 2

		open := price
		price = price * (1 + trend + walk)

		samples = append(samples, core.PriceSample{
			Time:  at,
			Open:  open,
			High:  math.Max(open, price) * (1 + g.rng.Float64()*wickSpread),
			Low:   math.Min(open, price) * (1 - g.rng.Float64()*wickSpread),
			Close: price,
		})
	}

	return samples
}

// Daily generates one candle per day for the past days, ending today,
// random-walking around the base price.
func (g *Generator) Daily(days int, basePrice float64) []core.PriceSample {
	now := g.now()
	price := basePrice

	samples := make([]core.PriceSample, 0, days+1)
	for i := days; i >= 0; i-- {
		at := now.AddDate(0, 0, -i)

		change := (g.rng.Float64() - 0.5) * dailyVolatility
		price = price * (1 + change)

		open := price * (1 + (g.rng.Float64()-0.5)*0.005)
		samples = append(samples, core.PriceSample{
			Time:  at,
			Open:  open,
			High:  math.Max(open, price) * (1 + g.rng.Float64()*0.008),
			Low:   math.Min(open, price) * (1 - g.rng.Float64()*0.008),
			Close: price,
		})
	}

	return samples
}
