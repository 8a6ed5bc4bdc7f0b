// Package notifier delivers alert messages to external sinks.
package notifier

// Notifier is the delivery interface the alert evaluator fans out to.
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Notify delivers one alert message
	Notify(msg string) error
}
