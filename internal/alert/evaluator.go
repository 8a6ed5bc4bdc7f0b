package alert

import (
	"fmt"
	"time"
)

// DefaultCooldown is the minimum gap between notifications for the
// same alert.
const DefaultCooldown = 5 * time.Minute

// Notifier interface for delivering alert messages.
type Notifier interface {
	Name() string
	Notify(msg string) error
}

// Evaluator checks the alert list against each new price and fires
// notifications for alerts that have just crossed their target.
type Evaluator struct {
	manager   *Manager
	notifiers []Notifier
	cooldown  time.Duration

	// Alerts triggered on the previous evaluation; only the rising
	// edge fires.
	prevTriggered map[string]struct{}

	// For testing: allow time advancement
	now func() time.Time
}

// NewEvaluator creates an evaluator over the given manager.
func NewEvaluator(manager *Manager, notifiers []Notifier) *Evaluator {
	return &Evaluator{
		manager:       manager,
		notifiers:     notifiers,
		cooldown:      DefaultCooldown,
		prevTriggered: make(map[string]struct{}),
		now:           time.Now,
	}
}

// SetCooldown overrides the re-notification cooldown.
func (e *Evaluator) SetCooldown(d time.Duration) {
	e.cooldown = d
}

// Evaluate runs all alerts against the price and notifies for newly
// triggered ones outside their cooldown. Returns the triggered alerts
// (fired or not) so callers can surface them.
func (e *Evaluator) Evaluate(price float64) []Alert {
	now := e.now()
	triggered := e.manager.Check(price)

	current := make(map[string]struct{}, len(triggered))
	for _, a := range triggered {
		current[a.ID] = struct{}{}

		if _, wasTriggered := e.prevTriggered[a.ID]; wasTriggered {
			continue
		}
		if a.LastNotified != nil && now.Sub(*a.LastNotified) < e.cooldown {
			continue
		}

		msg := formatMessage(a, price)
		for _, n := range e.notifiers {
			n.Notify(msg)
		}
		e.manager.markNotified(a.ID, now)
	}

	e.prevTriggered = current
	return triggered
}

func formatMessage(a Alert, price float64) string {
	verb := "risen above"
	if a.Direction == DirectionBelow {
		verb = "fallen below"
	}
	return fmt.Sprintf("gold price has %s %.0f (now %.0f)", verb, a.TargetPrice, price)
}

// advanceTime is for testing - advances the internal clock.
func (e *Evaluator) advanceTime(d time.Duration) {
	oldNow := e.now
	e.now = func() time.Time {
		return oldNow().Add(d)
	}
}
