package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vango-toast/pkg/toast"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "toast").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for toast lifetimes in seconds.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the lifetime histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango",
		Subsystem: "toast",
		Buckets:   []float64{0.5, 1, 1.6, 2.5, 5, 10, 30, 60, 300},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a toast.Observer that records Prometheus metrics. It also
// counts live-preview traffic.
//
// Metrics collected (default namespace and subsystem):
//   - vango_toast_shown_total: toasts shown by severity
//   - vango_toast_dismissed_total: dismissals by severity and trigger
//   - vango_toast_detached_total: elements removed after the exit animation
//   - vango_toast_active: toasts currently in the active set
//   - vango_toast_lifetime_seconds: time from show to dismissal
//   - vango_toast_patches_sent_total: patches streamed to preview clients
//   - vango_toast_preview_clients: connected preview clients
//   - vango_toast_websocket_errors_total: preview WebSocket errors by type
type Metrics struct {
	shown     *prometheus.CounterVec
	dismissed *prometheus.CounterVec
	detached  prometheus.Counter
	active    prometheus.Gauge
	lifetime  *prometheus.HistogramVec

	patchesSent prometheus.Counter
	clients     prometheus.Gauge
	wsErrors    *prometheus.CounterVec
}

var _ toast.Observer = (*Metrics)(nil)

// NewMetrics registers the toast metrics and returns the observer.
// It panics if the metrics are already registered with the registry.
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	toasts := toast.New(doc, loop, toast.WithObserver(m))
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "shown_total",
			Help:        "Total number of toasts shown",
			ConstLabels: config.ConstLabels,
		}, []string{"severity"}),

		dismissed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dismissed_total",
			Help:        "Total number of toasts dismissed, by trigger",
			ConstLabels: config.ConstLabels,
		}, []string{"severity", "trigger"}),

		detached: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "detached_total",
			Help:        "Total number of toast elements removed from the document",
			ConstLabels: config.ConstLabels,
		}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active",
			Help:        "Number of toasts in the active set",
			ConstLabels: config.ConstLabels,
		}),

		lifetime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "lifetime_seconds",
			Help:        "Time from show to dismissal in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"trigger"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to preview clients",
			ConstLabels: config.ConstLabels,
		}),

		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_clients",
			Help:        "Number of connected preview clients",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total preview WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// ToastShown implements toast.Observer.
func (m *Metrics) ToastShown(h *toast.Handle) {
	m.shown.WithLabelValues(string(h.Severity())).Inc()
	m.active.Inc()
}

// ToastDismissed implements toast.Observer.
func (m *Metrics) ToastDismissed(h *toast.Handle, trigger toast.Trigger) {
	m.dismissed.WithLabelValues(string(h.Severity()), trigger.String()).Inc()
	m.active.Dec()
	if shown, dismissed := h.ShownAt(), h.DismissedAt(); !dismissed.IsZero() {
		m.lifetime.WithLabelValues(trigger.String()).Observe(dismissed.Sub(shown).Seconds())
	}
}

// ToastDetached implements toast.Observer.
func (m *Metrics) ToastDetached(*toast.Handle) {
	m.detached.Inc()
}

// RecordPatches records patches sent to preview clients.
func (m *Metrics) RecordPatches(count int) {
	m.patchesSent.Add(float64(count))
}

// ClientConnected records a preview client connecting.
func (m *Metrics) ClientConnected() { m.clients.Inc() }

// ClientDisconnected records a preview client going away.
func (m *Metrics) ClientDisconnected() { m.clients.Dec() }

// RecordWebSocketError records a preview WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}
