package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	priceFetches     *prometheus.CounterVec
	priceRefreshes   prometheus.Counter
	analysisDuration prometheus.Histogram
	signalsGenerated *prometheus.CounterVec
	alertsFired      *prometheus.CounterVec
	alertsActive     prometheus.Gauge
	historyEntries   prometheus.Gauge
	notifications    *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.priceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldwatch_price_fetches_total",
			Help: "Total number of price fetches by source",
		},
		[]string{"source", "status"},
	)
	r.priceRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "goldwatch_price_refreshes_total",
			Help: "Total number of completed price refresh cycles",
		},
	)
	r.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "goldwatch_analysis_duration_seconds",
			Help:    "Technical analysis duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.signalsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldwatch_signals_generated_total",
			Help: "Total number of trading signals generated",
		},
		[]string{"type", "strength"},
	)
	r.alertsFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldwatch_alerts_fired_total",
			Help: "Total number of price alerts fired",
		},
		[]string{"direction"},
	)
	r.alertsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "goldwatch_alerts_active",
			Help: "Number of enabled price alerts",
		},
	)
	r.historyEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "goldwatch_history_entries",
			Help: "Number of price updates held in the history buffer",
		},
	)
	r.notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldwatch_notifications_total",
			Help: "Total number of alert notifications sent",
		},
		[]string{"notifier", "status"},
	)

	reg.MustRegister(r.priceFetches)
	reg.MustRegister(r.priceRefreshes)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.signalsGenerated)
	reg.MustRegister(r.alertsFired)
	reg.MustRegister(r.alertsActive)
	reg.MustRegister(r.historyEntries)
	reg.MustRegister(r.notifications)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordPriceFetch records a price fetch attempt against a source.
func (r *Registry) RecordPriceFetch(source, status string) {
	r.priceFetches.WithLabelValues(source, status).Inc()
}

// RecordPriceRefresh records a completed refresh cycle.
func (r *Registry) RecordPriceRefresh() {
	r.priceRefreshes.Inc()
}

// RecordAnalysis records a technical analysis run.
func (r *Registry) RecordAnalysis(duration float64) {
	r.analysisDuration.Observe(duration)
}

// RecordSignal records a generated trading signal.
func (r *Registry) RecordSignal(signalType, strength string) {
	r.signalsGenerated.WithLabelValues(signalType, strength).Inc()
}

// RecordAlertFired records a fired price alert.
func (r *Registry) RecordAlertFired(direction string) {
	r.alertsFired.WithLabelValues(direction).Inc()
}

// SetAlertsActive sets the number of enabled alerts.
func (r *Registry) SetAlertsActive(count int) {
	r.alertsActive.Set(float64(count))
}

// SetHistorySize sets the history buffer size.
func (r *Registry) SetHistorySize(size int) {
	r.historyEntries.Set(float64(size))
}

// RecordNotification records an alert notification delivery attempt.
func (r *Registry) RecordNotification(notifier, status string) {
	r.notifications.WithLabelValues(notifier, status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
