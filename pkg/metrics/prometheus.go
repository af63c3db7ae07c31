// Package metrics provides Prometheus metrics for the podium dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default bucket layouts.
var (
	defaultLatencyBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}
	rowBuckets            = prometheus.ExponentialBuckets(1, 4, 10) // 1 .. 262144 rows
	gcPauseBuckets        = []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
)

// Manager manages all Prometheus metrics for the podium service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Query pipeline
	filterEvaluations prometheus.Counter
	filterLatency     prometheus.Histogram
	filteredRows      prometheus.Histogram
	emptyResults      prometheus.Counter
	viewComputations  *prometheus.CounterVec
	viewLatency       *prometheus.HistogramVec
	csvExports        prometheus.Counter
	csvExportedRows   prometheus.Counter

	// Dataset
	datasetRecords  prometheus.Gauge
	snapshotVersion prometheus.Gauge
	reloads         *prometheus.CounterVec
	reloadDuration  prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "dashboard",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string { return m.metricPrefix + n }

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every series definition
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.filterEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("filter_evaluations_total"),
		Help: "Total number of filter pipeline evaluations",
	})
	m.filterLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("filter_latency_milliseconds"),
		Help:    "Filter pipeline latency in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.filteredRows = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("filtered_rows"),
		Help:    "Number of records surviving the filter pipeline",
		Buckets: rowBuckets,
	})
	m.emptyResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("empty_results_total"),
		Help: "Filter evaluations that matched no record",
	})
	m.viewComputations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("view_computations_total"),
		Help: "Aggregate view computations by view",
	}, []string{"view"})
	m.viewLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("view_latency_milliseconds"),
		Help:    "Aggregate view computation latency in milliseconds, filter included",
		Buckets: m.histogramBuckets,
	}, []string{"view"})
	m.csvExports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("csv_exports_total"),
		Help: "Total number of CSV exports",
	})
	m.csvExportedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("csv_exported_rows_total"),
		Help: "Total number of data rows written by CSV exports",
	})

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("dataset_records"),
		Help: "Records in the current dataset snapshot",
	})
	m.snapshotVersion = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("snapshot_version"),
		Help: "Version of the current dataset snapshot",
	})
	m.reloads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("dataset_reloads_total"),
		Help: "Dataset loads by outcome",
	}, []string{"outcome"})
	m.reloadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("dataset_reload_duration_milliseconds"),
		Help:    "Dataset load duration in milliseconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 16),
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("http_requests_total"),
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("http_request_duration_milliseconds"),
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("errors_by_endpoint_total"),
		Help: "Errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})
	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("errors_by_type_total"),
		Help: "Errors by type and severity",
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("system_memory_usage_bytes"),
		Help: "System memory usage in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("system_goroutine_count"),
		Help: "Number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("system_gc_pause_time_milliseconds"),
		Help:    "GC pause time in milliseconds",
		Buckets: gcPauseBuckets,
	})
}

func on() bool { return globalManager != nil && globalManager.enabled }

// RecordFilter records one filter evaluation that kept rows records.
func RecordFilter(latencyMs float64, rows int) {
	if !on() {
		return
	}
	globalManager.filterEvaluations.Inc()
	globalManager.filterLatency.Observe(latencyMs)
	globalManager.filteredRows.Observe(float64(rows))
	if rows == 0 {
		globalManager.emptyResults.Inc()
	}
}

// RecordView records one computation of the named view.
func RecordView(view string, latencyMs float64) {
	if !on() {
		return
	}
	globalManager.viewComputations.WithLabelValues(view).Inc()
	globalManager.viewLatency.WithLabelValues(view).Observe(latencyMs)
}

// RecordCSVExport records one export of rows data rows.
func RecordCSVExport(rows int) {
	if !on() {
		return
	}
	globalManager.csvExports.Inc()
	globalManager.csvExportedRows.Add(float64(rows))
}

// UpdateDatasetRecords sets the size of the current snapshot.
func UpdateDatasetRecords(count int) {
	if !on() {
		return
	}
	globalManager.datasetRecords.Set(float64(count))
}

// UpdateSnapshotVersion sets the current snapshot version.
func UpdateSnapshotVersion(version uint64) {
	if !on() {
		return
	}
	globalManager.snapshotVersion.Set(float64(version))
}

// RecordReload records one dataset load attempt.
func RecordReload(ok bool, durationMs float64) {
	if !on() {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	globalManager.reloads.WithLabelValues(outcome).Inc()
	globalManager.reloadDuration.Observe(durationMs)
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !on() {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !on() {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !on() {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType increments the error counter for a type and severity.
func RecordErrorByType(errorType, severity string) {
	if !on() {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage updates the system memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !on() {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	if !on() {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !on() {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// SetEnabled switches the package-level recorders on or off.
func SetEnabled(enabled bool) {
	if globalManager != nil {
		globalManager.enabled = enabled
	}
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
