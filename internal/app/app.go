// Package app orchestrates the collectors, analysis core, alerts and
// persistence behind the HTTP API. A single goroutine owns all state
// mutation; the API reads snapshots under a read lock.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/naratip/goldwatch/internal/alert"
	"github.com/naratip/goldwatch/internal/collector"
	"github.com/naratip/goldwatch/internal/collector/synthetic"
	"github.com/naratip/goldwatch/internal/config"
	"github.com/naratip/goldwatch/internal/core"
	"github.com/naratip/goldwatch/internal/history"
	"github.com/naratip/goldwatch/internal/indicator"
	"github.com/naratip/goldwatch/internal/metrics"
	"github.com/naratip/goldwatch/internal/signal"
	"github.com/naratip/goldwatch/internal/storage"
)

// App is the main application orchestrator.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	reg    *metrics.Registry

	gold      collector.GoldSource
	candles   collector.CandleSource
	synth     *synthetic.Generator
	persister *storage.Persister

	alerts    *alert.Manager
	evaluator *alert.Evaluator

	now func() time.Time

	mu       sync.RWMutex
	latest   *core.GoldPrice
	log      []core.PriceUpdate
	opening  *storage.OpeningPrices
	snap     core.IndicatorSnapshot
	sig      core.TradingSignal
	analyzed bool

	running bool
	cancel  context.CancelFunc
}

// New creates a new App instance.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	manager := alert.NewManager()

	a := &App{
		cfg:       cfg,
		logger:    logger,
		synth:     synthetic.New(time.Now().UnixNano()),
		alerts:    manager,
		evaluator: alert.NewEvaluator(manager, nil),
		now:       time.Now,
	}
	if cfg.Alerts.Cooldown > 0 {
		a.evaluator.SetCooldown(cfg.Alerts.Cooldown)
	}
	return a
}

// SetGoldSource sets the gold price feed.
func (a *App) SetGoldSource(src collector.GoldSource) {
	a.gold = src
}

// SetCandleSource sets the candlestick feed used for analysis.
func (a *App) SetCandleSource(src collector.CandleSource) {
	a.candles = src
}

// SetPersister enables state persistence through the given persister.
func (a *App) SetPersister(p *storage.Persister) {
	a.persister = p
}

// SetMetrics attaches a metrics registry.
func (a *App) SetMetrics(reg *metrics.Registry) {
	a.reg = reg
}

// SetNotifiers installs the alert notifiers.
func (a *App) SetNotifiers(notifiers []alert.Notifier) {
	a.evaluator = alert.NewEvaluator(a.alerts, notifiers)
	if a.cfg.Alerts.Cooldown > 0 {
		a.evaluator.SetCooldown(a.cfg.Alerts.Cooldown)
	}
}

// Start restores persisted state and runs the refresh loops until the
// context is cancelled.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("app already running")
	}
	a.running = true

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	if err := a.restore(ctx); err != nil {
		a.logger.Warn("failed to restore persisted state", zap.Error(err))
	}

	goldInterval := a.cfg.Collectors.Gold.Interval
	if goldInterval <= 0 {
		goldInterval = 60 * time.Second
	}
	candleInterval := a.cfg.Collectors.Candles.Refresh
	if candleInterval <= 0 {
		candleInterval = 5 * time.Minute
	}

	a.logger.Info("goldwatch starting",
		zap.Duration("gold_interval", goldInterval),
		zap.Duration("candle_interval", candleInterval),
	)

	// Initial run
	a.RunOnce(ctx)

	goldTicker := time.NewTicker(goldInterval)
	defer goldTicker.Stop()
	candleTicker := time.NewTicker(candleInterval)
	defer candleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("goldwatch shutting down")
			a.mu.Lock()
			a.running = false
			a.mu.Unlock()
			return ctx.Err()
		case <-goldTicker.C:
			a.refreshPrice(ctx)
		case <-candleTicker.C:
			a.refreshAnalysis(ctx)
		}
	}
}

// Stop stops the refresh loops.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// RunOnce performs a single price and analysis refresh (useful for
// testing and the one-shot CLI).
func (a *App) RunOnce(ctx context.Context) {
	a.refreshPrice(ctx)
	a.refreshAnalysis(ctx)
}

// restore loads today's history, opening prices and the alert list.
func (a *App) restore(ctx context.Context) error {
	if a.persister == nil {
		return nil
	}

	today := a.now()

	log, err := a.persister.LoadHistory(ctx, today)
	if err != nil {
		return err
	}
	opening, err := a.persister.LoadOpening(ctx, today)
	if err != nil {
		return err
	}
	alerts, err := a.persister.LoadAlerts(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.log = log
	a.opening = opening
	if len(log) > 0 {
		last := log[len(log)-1]
		a.latest = &core.GoldPrice{
			Bar:      last.Bar,
			Ornament: last.Ornament,
			Round:    last.Round,
		}
	}
	a.mu.Unlock()

	a.alerts.Load(alerts)

	a.logger.Info("restored persisted state",
		zap.Int("history_entries", len(log)),
		zap.Int("alerts", len(alerts)),
		zap.Bool("opening_known", opening != nil),
	)
	return nil
}

// refreshPrice fetches the latest quote, folds it into the session
// state and evaluates alerts.
func (a *App) refreshPrice(ctx context.Context) {
	if a.gold == nil {
		return
	}

	price, err := a.gold.FetchLatest()
	if err != nil {
		a.recordFetch(a.gold.Name(), "error")
		a.logger.Warn("gold price fetch failed", zap.Error(err))
		return
	}
	a.recordFetch(a.gold.Name(), "ok")

	now := a.now()

	a.mu.Lock()

	// A new calendar day resets the session baseline.
	if a.opening == nil || a.opening.Date != now.Format("2006-01-02") {
		a.opening = &storage.OpeningPrices{
			BarSell:      price.Bar.Sell,
			OrnamentSell: price.Ornament.Sell,
			Date:         now.Format("2006-01-02"),
		}
		if a.persister != nil {
			if err := a.persister.SaveOpening(ctx, now, *a.opening); err != nil {
				a.logger.Warn("failed to persist opening prices", zap.Error(err))
			}
		}
	}

	// Session change is measured against the day's opening quote.
	price.Bar.Change = price.Bar.Sell - a.opening.BarSell
	if a.opening.BarSell != 0 {
		price.Bar.ChangePercent = price.Bar.Change / a.opening.BarSell * 100
	}
	price.Ornament.Change = price.Ornament.Sell - a.opening.OrnamentSell
	if a.opening.OrnamentSell != 0 {
		price.Ornament.ChangePercent = price.Ornament.Change / a.opening.OrnamentSell * 100
	}

	a.latest = price

	var last *core.PriceUpdate
	if len(a.log) > 0 {
		last = &a.log[len(a.log)-1]
	}
	appended := false
	if history.ShouldAppend(last, *price) {
		a.log = history.Append(a.log, core.PriceUpdate{
			Time:     now,
			Round:    price.Round,
			Bar:      price.Bar,
			Ornament: price.Ornament,
		})
		appended = true
	}
	today := history.FilterToday(a.log, now)
	logSize := len(a.log)

	a.mu.Unlock()

	if appended {
		a.logger.Info("price update recorded",
			zap.Float64("bar_sell", price.Bar.Sell),
			zap.Float64("change", price.Bar.Change),
			zap.Int("round", price.Round),
		)
		if a.persister != nil {
			if err := a.persister.SaveHistory(ctx, now, today); err != nil {
				a.logger.Warn("failed to persist history", zap.Error(err))
			}
		}
	}

	if a.reg != nil {
		a.reg.RecordPriceRefresh()
		a.reg.SetHistorySize(logSize)
	}

	a.evaluateAlerts(ctx, price.Bar.Sell)
}

// refreshAnalysis recomputes indicators and the trading signal from the
// candle feed, falling back to synthetic candles when no feed is wired.
func (a *App) refreshAnalysis(ctx context.Context) {
	start := time.Now()

	samples := a.fetchSamples()
	if len(samples) == 0 {
		return
	}

	currentPrice := samples[len(samples)-1].Close
	a.mu.RLock()
	if a.latest != nil {
		currentPrice = a.latest.Bar.Sell
	}
	a.mu.RUnlock()

	snap := indicator.Compute(samples)
	sig := signal.Generate(currentPrice, snap, samples)

	a.mu.Lock()
	a.snap = snap
	a.sig = sig
	a.analyzed = true
	a.mu.Unlock()

	if a.reg != nil {
		a.reg.RecordAnalysis(time.Since(start).Seconds())
		a.reg.RecordSignal(string(sig.Type), string(sig.Strength))
	}

	a.logger.Debug("analysis refreshed",
		zap.String("signal", string(sig.Type)),
		zap.String("strength", string(sig.Strength)),
		zap.Float64("rsi", snap.RSI),
	)
}

func (a *App) fetchSamples() []core.PriceSample {
	if a.candles != nil {
		cfg := a.cfg.Collectors.Candles
		samples, err := a.candles.FetchKlines(cfg.Symbol, cfg.Interval, cfg.Limit)
		if err == nil && len(samples) > 0 {
			a.recordFetch(a.candles.Name(), "ok")
			return samples
		}
		a.recordFetch(a.candles.Name(), "error")
		a.logger.Warn("candle fetch failed, using synthetic candles", zap.Error(err))
	}

	a.mu.RLock()
	base := 0.0
	if a.latest != nil {
		base = a.latest.Bar.Sell
	}
	a.mu.RUnlock()
	if base == 0 {
		return nil
	}
	return a.synth.Intraday(base)
}

func (a *App) evaluateAlerts(ctx context.Context, price float64) {
	if !a.cfg.Alerts.Enabled {
		return
	}

	fired := a.evaluator.Evaluate(price)
	for _, f := range fired {
		a.logger.Info("price alert fired",
			zap.String("id", f.ID),
			zap.Float64("target", f.TargetPrice),
			zap.String("direction", string(f.Direction)),
		)
		if a.reg != nil {
			a.reg.RecordAlertFired(string(f.Direction))
		}
	}
	if len(fired) > 0 {
		a.persistAlerts(ctx)
	}

	if a.reg != nil {
		active := 0
		for _, al := range a.alerts.List() {
			if al.Active {
				active++
			}
		}
		a.reg.SetAlertsActive(active)
	}
}

func (a *App) recordFetch(source, status string) {
	if a.reg != nil {
		a.reg.RecordPriceFetch(source, status)
	}
}

func (a *App) persistAlerts(ctx context.Context) {
	if a.persister == nil {
		return
	}
	if err := a.persister.SaveAlerts(ctx, a.alerts.List()); err != nil {
		a.logger.Warn("failed to persist alerts", zap.Error(err))
	}
}

// LatestPrice returns the most recent quote, or nil before the first
// successful fetch.
func (a *App) LatestPrice() *core.GoldPrice {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.latest == nil {
		return nil
	}
	p := *a.latest
	return &p
}

// Analysis returns the latest indicator snapshot and signal.
func (a *App) Analysis() (core.IndicatorSnapshot, core.TradingSignal, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap, a.sig, a.analyzed
}

// History returns the full price update buffer.
func (a *App) History() []core.PriceUpdate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.PriceUpdate(nil), a.log...)
}

// TodayHistory returns today's price updates in chronological order.
func (a *App) TodayHistory() []core.PriceUpdate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return history.FilterToday(a.log, a.now())
}

// TodayStats returns today's session statistics, or nil before the
// first update of the day.
func (a *App) TodayStats() *core.SessionStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	opening := 0.0
	if a.opening != nil {
		opening = a.opening.BarSell
	}
	return history.Stats(history.FilterToday(a.log, a.now()), opening)
}

// Alerts returns all configured alerts.
func (a *App) Alerts() []alert.Alert {
	return a.alerts.List()
}

// AddAlert registers a new alert and persists the list.
func (a *App) AddAlert(target float64, dir alert.Direction) (alert.Alert, error) {
	al, err := a.alerts.Add(target, dir)
	if err != nil {
		return alert.Alert{}, err
	}
	a.persistAlerts(context.Background())
	return al, nil
}

// RemoveAlert deletes an alert and persists the list.
func (a *App) RemoveAlert(id string) error {
	if err := a.alerts.Remove(id); err != nil {
		return err
	}
	a.persistAlerts(context.Background())
	return nil
}

// ToggleAlert flips an alert between active and paused.
func (a *App) ToggleAlert(id string) error {
	if err := a.alerts.Toggle(id); err != nil {
		return err
	}
	a.persistAlerts(context.Background())
	return nil
}

// Running reports whether the refresh loop is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}
