package api

import (
	"time"

	"github.com/naratip/goldwatch/internal/alert"
	"github.com/naratip/goldwatch/internal/core"
)

// testApp is a canned app.App for handler tests.
type testApp struct {
	price   *core.GoldPrice
	snap    core.IndicatorSnapshot
	sig     core.TradingSignal
	ready   bool
	history []core.PriceUpdate
	today   []core.PriceUpdate
	stats   *core.SessionStats
	manager *alert.Manager
}

func newTestApp() *testApp {
	return &testApp{manager: alert.NewManager()}
}

func (a *testApp) LatestPrice() *core.GoldPrice { return a.price }

func (a *testApp) Analysis() (core.IndicatorSnapshot, core.TradingSignal, bool) {
	return a.snap, a.sig, a.ready
}

func (a *testApp) History() []core.PriceUpdate      { return a.history }
func (a *testApp) TodayHistory() []core.PriceUpdate { return a.today }
func (a *testApp) TodayStats() *core.SessionStats   { return a.stats }

func (a *testApp) Alerts() []alert.Alert { return a.manager.List() }

func (a *testApp) AddAlert(target float64, dir alert.Direction) (alert.Alert, error) {
	return a.manager.Add(target, dir)
}

func (a *testApp) RemoveAlert(id string) error { return a.manager.Remove(id) }
func (a *testApp) ToggleAlert(id string) error { return a.manager.Toggle(id) }

func testPrice(sell float64) *core.GoldPrice {
	return &core.GoldPrice{
		Bar: core.PriceQuote{
			Buy:  sell - 100,
			Sell: sell,
			Time: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		},
		Ornament: core.PriceQuote{
			Buy:  sell - 1200,
			Sell: sell + 400,
			Time: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		},
		Round:      3,
		LastUpdate: "02/06/2025 10:00",
	}
}
