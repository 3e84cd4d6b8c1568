package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Lock metrics
	LocksPresented  *prometheus.CounterVec
	Unlocks         *prometheus.CounterVec
	TimersArmed     *prometheus.CounterVec
	TimersCancelled *prometheus.CounterVec
	DirectiveErrors prometheus.Counter

	// Session metrics
	SessionsActive prometheus.Gauge
	SessionsTotal  prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON health surface
type Snapshot struct {
	TotalRequests int64 `json:"total_requests"`
	TotalErrors   int64 `json:"total_errors"`
	LocksShown    int64 `json:"locks_shown"`
	UnlocksTotal  int64 `json:"unlocks_total"`
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenlatch_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screenlatch_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		// Lock metrics
		LocksPresented: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenlatch_locks_presented_total",
				Help: "Total number of lock screen presentations by trigger",
			},
			[]string{"trigger"},
		),
		Unlocks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenlatch_unlocks_total",
				Help: "Total number of successful unlocks by kind",
			},
			[]string{"kind"},
		),
		TimersArmed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenlatch_timers_armed_total",
				Help: "Total number of lock timers armed by kind",
			},
			[]string{"kind"},
		),
		TimersCancelled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenlatch_timers_cancelled_total",
				Help: "Total number of lock timers cancelled by kind",
			},
			[]string{"kind"},
		),
		DirectiveErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "screenlatch_directive_errors_total",
				Help: "Total number of presentation directives that failed delivery",
			},
		),

		// Session metrics
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "screenlatch_sessions_active",
				Help: "Number of connected shell sessions",
			},
		),
		SessionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "screenlatch_sessions_total",
				Help: "Total number of shell sessions created",
			},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "screenlatch_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenlatch_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "screenlatch_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordLockPresented records a lock screen presentation
func (m *Metrics) RecordLockPresented(trigger string) {
	m.LocksPresented.WithLabelValues(trigger).Inc()

	m.mu.Lock()
	m.snapshot.LocksShown++
	m.mu.Unlock()
}

// RecordUnlock records a successful unlock
func (m *Metrics) RecordUnlock(kind string) {
	m.Unlocks.WithLabelValues(kind).Inc()

	m.mu.Lock()
	m.snapshot.UnlocksTotal++
	m.mu.Unlock()
}

// RecordTimerArmed records a lock timer being armed
func (m *Metrics) RecordTimerArmed(kind string) {
	m.TimersArmed.WithLabelValues(kind).Inc()
}

// RecordTimerCancelled records a lock timer being cancelled before firing
func (m *Metrics) RecordTimerCancelled(kind string) {
	m.TimersCancelled.WithLabelValues(kind).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// GetSnapshot returns current counter values for the JSON health surface
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
