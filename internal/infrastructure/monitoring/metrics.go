package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "profile_engine"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Engine metrics
	EngineEvents    *prometheus.CounterVec
	ProfilesActive  prometheus.Gauge
	TabsOpen        prometheus.Gauge
	RotationsActive prometheus.Gauge

	// Stream metrics
	StreamSubscribers prometheus.Gauge
	StreamDropped     *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current request totals for the health endpoint
type MetricsSnapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	TotalDuration float64 `json:"total_duration_seconds"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{startTime: time.Now()}

	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of bridge HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Bridge HTTP request duration in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	m.EngineEvents = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Engine events: applies, rotation ticks, validation and parse failures",
		},
		[]string{"event"},
	)
	m.ProfilesActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "profiles_active",
		Help:      "Number of live profiles",
	})
	m.TabsOpen = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tabs_open",
		Help:      "Number of tabs not yet closed",
	})
	m.RotationsActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rotations_active",
		Help:      "Number of profiles with an armed rotation",
	})

	m.StreamSubscribers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stream_subscribers",
		Help:      "Number of connected notification subscribers",
	})
	m.StreamDropped = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_dropped_total",
			Help:      "Notifications dropped because a subscriber was slow or failing",
		},
		[]string{"reason"},
	)

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Engine uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler exposes the metrics in g in Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordEngineEvent mirrors one statistics event into Prometheus
func (m *Metrics) RecordEngineEvent(event string) {
	m.EngineEvents.WithLabelValues(event).Inc()
}

// SetProfilesActive sets the number of live profiles
func (m *Metrics) SetProfilesActive(count int) {
	m.ProfilesActive.Set(float64(count))
}

// SetTabsOpen sets the number of tabs not yet closed
func (m *Metrics) SetTabsOpen(count int) {
	m.TabsOpen.Set(float64(count))
}

// SetRotationsActive sets the number of armed rotations
func (m *Metrics) SetRotationsActive(count int) {
	m.RotationsActive.Set(float64(count))
}

// IncStreamSubscribers increments connected subscribers
func (m *Metrics) IncStreamSubscribers() {
	m.StreamSubscribers.Inc()
}

// DecStreamSubscribers decrements connected subscribers
func (m *Metrics) DecStreamSubscribers() {
	m.StreamSubscribers.Dec()
}

// RecordStreamDrop counts a dropped notification
func (m *Metrics) RecordStreamDrop(reason string) {
	m.StreamDropped.WithLabelValues(reason).Inc()
}

// Snapshot returns current request totals
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
