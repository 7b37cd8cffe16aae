package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the stride service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Submission pipeline
	markersAccepted   prometheus.Counter
	markersRejected   *prometheus.CounterVec
	distanceMeters    prometheus.Counter
	playersRegistered prometheus.Counter

	// Leaderboards and rewards
	leaderboardUpdates prometheus.Counter
	rewardMinted       prometheus.Counter
	rewardRefused      prometheus.Counter

	// Scale gauges
	totalMarkers prometheus.Gauge
	totalPlayers prometheus.Gauge
	gridCells    prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stride",
		subsystem:        "ledger",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.markersAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "markers_accepted_total",
		Help:      "Total number of accepted marker submissions",
	})

	m.markersRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "markers_rejected_total",
			Help:      "Total number of rejected marker submissions by reason",
		},
		[]string{"reason"},
	)

	m.distanceMeters = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "distance_meters_total",
		Help:      "Total estimated distance accumulated across all players",
	})

	m.playersRegistered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_registered_total",
		Help:      "Total number of players auto-registered on first submission",
	})

	m.leaderboardUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_updates_total",
		Help:      "Total number of leaderboard upserts (global and per-city)",
	})

	m.rewardMinted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reward_minted_total",
		Help:      "Total reward units successfully minted",
	})

	m.rewardRefused = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reward_refused_total",
		Help:      "Total mint requests refused by the token ledger",
	})

	m.totalMarkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_markers",
		Help:      "Current length of the marker ledger",
	})

	m.totalPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_players",
		Help:      "Current number of registered players",
	})

	m.gridCells = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "grid_cells_used",
		Help:      "Current number of consumed (player, grid-cell) pairs",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordMarkerAccepted increments the accepted-marker counter.
func RecordMarkerAccepted() {
	globalManager.markersAccepted.Inc()
}

// RecordMarkerRejected increments the rejection counter for a reason label.
func RecordMarkerRejected(reason string) {
	globalManager.markersRejected.WithLabelValues(reason).Inc()
}

// AddDistance accumulates estimated meters from one accepted marker.
func AddDistance(meters uint64) {
	globalManager.distanceMeters.Add(float64(meters))
}

// RecordPlayerRegistered increments the registration counter.
func RecordPlayerRegistered() {
	globalManager.playersRegistered.Inc()
}

// RecordLeaderboardUpdate increments the leaderboard upsert counter.
func RecordLeaderboardUpdate() {
	globalManager.leaderboardUpdates.Inc()
}

// RecordRewardMinted accumulates successfully minted reward units.
func RecordRewardMinted(amount uint64) {
	globalManager.rewardMinted.Add(float64(amount))
}

// RecordRewardRefused increments the refused-mint counter.
func RecordRewardRefused() {
	globalManager.rewardRefused.Inc()
}

// UpdateTotalMarkers sets the ledger length gauge.
func UpdateTotalMarkers(count uint64) {
	globalManager.totalMarkers.Set(float64(count))
}

// UpdateTotalPlayers sets the registered player gauge.
func UpdateTotalPlayers(count int) {
	globalManager.totalPlayers.Set(float64(count))
}

// UpdateGridCells sets the consumed grid cell gauge.
func UpdateGridCells(count int) {
	globalManager.gridCells.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
