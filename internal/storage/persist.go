package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/naratip/goldwatch/internal/alert"
	"github.com/naratip/goldwatch/internal/core"
)

const dateLayout = "2006-01-02"

// OpeningPrices records the day's first captured quotes. Stored
// separately from the trimmed price log so the session change baseline
// survives log eviction.
type OpeningPrices struct {
	BarSell      float64 `json:"bar_sell"`
	OrnamentSell float64 `json:"ornament_sell"`
	Date         string  `json:"date"`
}

// Persister reads and writes goldwatch's documents through a Store.
type Persister struct {
	store Store
}

// NewPersister wraps a Store with typed document accessors.
func NewPersister(store Store) *Persister {
	return &Persister{store: store}
}

func historyKey(day time.Time) string {
	return fmt.Sprintf("history/%s.json", day.Format(dateLayout))
}

func openingKey(day time.Time) string {
	return fmt.Sprintf("opening/%s.json", day.Format(dateLayout))
}

const alertsKey = "alerts.json"

// SaveHistory stores the day's price log.
func (p *Persister) SaveHistory(ctx context.Context, day time.Time, log []core.PriceUpdate) error {
	data, err := json.Marshal(log)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return p.store.Put(ctx, historyKey(day), data)
}

// LoadHistory loads the day's price log; a missing document is an
// empty log, not an error.
func (p *Persister) LoadHistory(ctx context.Context, day time.Time) ([]core.PriceUpdate, error) {
	data, err := p.store.Get(ctx, historyKey(day))
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var log []core.PriceUpdate
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return log, nil
}

// SaveOpening stores the day's opening prices.
func (p *Persister) SaveOpening(ctx context.Context, day time.Time, opening OpeningPrices) error {
	opening.Date = day.Format(dateLayout)
	data, err := json.Marshal(opening)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return p.store.Put(ctx, openingKey(day), data)
}

// LoadOpening loads the day's opening prices, or nil when today has
// not been seen yet.
func (p *Persister) LoadOpening(ctx context.Context, day time.Time) (*OpeningPrices, error) {
	data, err := p.store.Get(ctx, openingKey(day))
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var opening OpeningPrices
	if err := json.Unmarshal(data, &opening); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return &opening, nil
}

// SaveAlerts stores the alert list.
func (p *Persister) SaveAlerts(ctx context.Context, alerts []alert.Alert) error {
	data, err := json.Marshal(alerts)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return p.store.Put(ctx, alertsKey, data)
}

// LoadAlerts loads the alert list; missing means none saved yet.
func (p *Persister) LoadAlerts(ctx context.Context) ([]alert.Alert, error) {
	data, err := p.store.Get(ctx, alertsKey)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var alerts []alert.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return alerts, nil
}
