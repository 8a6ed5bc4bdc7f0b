// Package alert manages user-defined price alerts: crossing a target
// from below or above triggers a notification, with a cooldown so a
// price oscillating around the target does not spam.
package alert

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naratip/goldwatch/internal/core"
)

// Direction says which side of the target price triggers the alert.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// Alert is one user-defined price threshold.
type Alert struct {
	ID           string     `json:"id"`
	TargetPrice  float64    `json:"target_price"`
	Direction    Direction  `json:"direction"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastNotified *time.Time `json:"last_notified,omitempty"`
}

// Triggered reports whether the alert fires at the given price.
// Inactive alerts never trigger.
func (a Alert) Triggered(price float64) bool {
	if !a.Active {
		return false
	}
	switch a.Direction {
	case DirectionAbove:
		return price >= a.TargetPrice
	case DirectionBelow:
		return price <= a.TargetPrice
	}
	return false
}

// Manager owns the alert list. Safe for concurrent use.
type Manager struct {
	alerts []Alert
	now    func() time.Time
	mu     sync.RWMutex
}

// NewManager creates an empty alert manager.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Load replaces the alert list, typically from persisted storage.
func (m *Manager) Load(alerts []Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append([]Alert(nil), alerts...)
}

// Add registers a new active alert and returns it.
func (m *Manager) Add(target float64, dir Direction) (Alert, error) {
	if target <= 0 {
		return Alert{}, core.ErrAlertInvalid
	}
	if dir != DirectionAbove && dir != DirectionBelow {
		return Alert{}, core.ErrAlertInvalid
	}

	a := Alert{
		ID:          uuid.NewString(),
		TargetPrice: target,
		Direction:   dir,
		Active:      true,
		CreatedAt:   m.now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, a)
	return a, nil
}

// Remove deletes an alert by ID.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, a := range m.alerts {
		if a.ID == id {
			m.alerts = append(m.alerts[:i], m.alerts[i+1:]...)
			return nil
		}
	}
	return core.ErrAlertNotFound
}

// Toggle flips an alert between active and paused.
func (m *Manager) Toggle(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.alerts {
		if m.alerts[i].ID == id {
			m.alerts[i].Active = !m.alerts[i].Active
			return nil
		}
	}
	return core.ErrAlertNotFound
}

// List returns a copy of all alerts.
func (m *Manager) List() []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Alert(nil), m.alerts...)
}

// Check returns the active alerts triggered at the given price.
func (m *Manager) Check(price float64) []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var triggered []Alert
	for _, a := range m.alerts {
		if a.Triggered(price) {
			triggered = append(triggered, a)
		}
	}
	return triggered
}

// markNotified stamps the alert's last notification time.
func (m *Manager) markNotified(id string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.alerts {
		if m.alerts[i].ID == id {
			t := at
			m.alerts[i].LastNotified = &t
			return
		}
	}
}
