// Package metrics provides Prometheus metrics for the kpastro service.
package metrics

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	DefaultNamespace          = "kpastro"
	DefaultSubsystem          = "engine"
	defaultRefreshInterval    = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// DefaultLatencyBuckets are the millisecond buckets of the chart and HTTP latency histograms.
var DefaultLatencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// Horary outcome labels.
const (
	OutcomeMatched   = "matched"
	OutcomeExhausted = "exhausted"
	OutcomeError     = "error"
)

// Manager manages all Prometheus metrics for the kpastro service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Chart metrics
	chartsComputed prometheus.Counter
	chartLatency   prometheus.Histogram

	// Horary metrics
	horarySearches    *prometheus.CounterVec
	horaryLatency     prometheus.Histogram
	horaryEvaluations prometheus.Histogram
	sweepInFlight     prometheus.Gauge

	// Ephemeris metrics
	ephemerisCalls  prometheus.Counter
	ephemerisErrors prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// installed pairs the global manager with the registry it was built on.
type installed struct {
	manager  *Manager
	registry *prometheus.Registry
}

var current atomic.Pointer[installed] //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Initialize global metrics with defaults so package-level recorders always work.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Init()
}

// Init replaces the global manager with one built from opts on a fresh custom
// registry, which avoids the default Go metrics. Call it before GetRegistry is
// handed to an exporter.
func Init(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	all := append(append([]Option(nil), opts...), WithPrometheusRegistry(registry))
	m := NewManager(all...)
	current.Store(&installed{manager: m, registry: registry})
	return m
}

func global() *Manager {
	return current.Load().manager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        DefaultNamespace,
		subsystem:        DefaultSubsystem,
		histogramBuckets: DefaultLatencyBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.chartsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "charts_computed_total",
		Help:      "Total number of charts built",
	})

	m.chartLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_latency_milliseconds",
		Help:      "Histogram of full chart computation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.horarySearches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "horary_searches_total",
			Help:      "Total number of horary searches by outcome",
		},
		[]string{"outcome"},
	)

	m.horaryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "horary_latency_milliseconds",
		Help:      "Histogram of horary search latency in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000, 30000},
	})

	m.horaryEvaluations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "horary_ascendant_evaluations",
		Help:      "Ascendant evaluations needed per horary search",
		Buckets:   []float64{5, 10, 20, 50, 100, 250, 500, 1000},
	})

	m.sweepInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "horary_sweep_in_flight",
		Help:      "Horary searches currently running inside sweeps",
	})

	m.ephemerisCalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ephemeris_calls_total",
		Help:      "Total number of ephemeris provider calls",
	})

	m.ephemerisErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ephemeris_errors_total",
		Help:      "Total number of failed ephemeris provider calls",
	})

	// HTTP Performance Metrics - User experience indicators
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

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordChart records a built chart and its latency.
func RecordChart(latencyMs float64) {
	m := global()
	m.chartsComputed.Inc()
	m.chartLatency.Observe(latencyMs)
}

// RecordHorary records a finished horary search. Zero evaluations, as for a
// search answered from cache, leave the evaluations histogram untouched.
func RecordHorary(outcome string, evaluations int, latencyMs float64) {
	m := global()
	m.horarySearches.WithLabelValues(outcome).Inc()
	m.horaryLatency.Observe(latencyMs)
	if evaluations > 0 {
		m.horaryEvaluations.Observe(float64(evaluations))
	}
}

// AddSweepInFlight moves the sweep gauge by delta.
func AddSweepInFlight(delta int) {
	global().sweepInFlight.Add(float64(delta))
}

// RecordEphemerisCall counts a provider call.
func RecordEphemerisCall(err error) {
	m := global()
	m.ephemerisCalls.Inc()
	if err != nil {
		m.ephemerisErrors.Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	global().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	global().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	global().errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	global().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	global().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	global().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	global().systemGCPauseTime.Observe(pauseMs)
}

// CollectSystem samples runtime memory, goroutine and GC figures once.
func CollectSystem() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	UpdateSystemMemoryUsage(m.Alloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		RecordSystemGCPauseTime(avgPauseMs)
	}
}

// RunSystemCollector samples system metrics at the manager's refresh interval until ctx is done.
func RunSystemCollector(ctx context.Context) {
	ticker := time.NewTicker(global().refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			CollectSystem()
		}
	}
}

// GetRegistry returns the custom Prometheus registry of the current global manager.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}
