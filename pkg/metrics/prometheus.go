package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh results used as label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultEmpty   = "empty"
)

// Manager owns the Prometheus collectors of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Refresh pipeline
	refreshes          *prometheus.CounterVec
	refreshLatency     prometheus.Histogram
	lastRefreshUnix    prometheus.Gauge
	refreshQueueSize   prometheus.Gauge
	refreshQueueFull   prometheus.Counter
	rowsIngested       prometheus.Gauge
	athletesTracked    prometheus.Gauge
	unknownBonusCodes  prometheus.Gauge
	unparsableDates    prometheus.Gauge
	rowsWithoutAthlete prometheus.Gauge

	// Row cache
	cacheOps *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cadenas",
		subsystem:        "results",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels, Buckets: m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.refreshes = auto.NewCounterVec(
		m.counterOpts("refreshes_total", "Sheet refresh attempts by result"),
		[]string{"result"},
	)
	m.refreshLatency = auto.NewHistogram(
		m.histogramOpts("refresh_duration_seconds", "Time to fetch and ingest the sheet"),
	)
	m.lastRefreshUnix = auto.NewGauge(
		m.gaugeOpts("last_refresh_timestamp_seconds", "Unix time of the last successful refresh"),
	)
	m.refreshQueueSize = auto.NewGauge(
		m.gaugeOpts("refresh_queue_size", "Pending refresh requests"),
	)
	m.refreshQueueFull = auto.NewCounter(
		m.counterOpts("refresh_queue_rejections_total", "Refresh requests rejected because the queue was full"),
	)
	m.rowsIngested = auto.NewGauge(
		m.gaugeOpts("rows_ingested", "Rows in the current snapshot"),
	)
	m.athletesTracked = auto.NewGauge(
		m.gaugeOpts("athletes", "Distinct athletes in the current snapshot"),
	)
	m.unknownBonusCodes = auto.NewGauge(
		m.gaugeOpts("unknown_bonus_code_rows", "Rows in the current snapshot whose bonus code is not in the table"),
	)
	m.unparsableDates = auto.NewGauge(
		m.gaugeOpts("unparsable_date_rows", "Rows in the current snapshot whose date could not be parsed"),
	)
	m.rowsWithoutAthlete = auto.NewGauge(
		m.gaugeOpts("rows_without_athlete", "Rows in the current snapshot with an empty athlete cell"),
	)

	m.cacheOps = auto.NewCounterVec(
		m.counterOpts("cache_operations_total", "Row cache operations by operation and result"),
		[]string{"op", "result"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// RecordRefresh counts a refresh attempt and observes its duration.
func RecordRefresh(result string, d time.Duration) {
	globalManager.refreshes.WithLabelValues(result).Inc()
	globalManager.refreshLatency.Observe(d.Seconds())
	if result == ResultSuccess {
		globalManager.lastRefreshUnix.Set(float64(time.Now().Unix()))
	}
}

// IngestStats is the per-snapshot data quality summary.
type IngestStats struct {
	Rows             int
	Athletes         int
	UnknownBonusCode int
	UnparsableDate   int
	MissingAthlete   int
}

// UpdateIngest publishes the gauges describing the current snapshot.
func UpdateIngest(s IngestStats) {
	globalManager.rowsIngested.Set(float64(s.Rows))
	globalManager.athletesTracked.Set(float64(s.Athletes))
	globalManager.unknownBonusCodes.Set(float64(s.UnknownBonusCode))
	globalManager.unparsableDates.Set(float64(s.UnparsableDate))
	globalManager.rowsWithoutAthlete.Set(float64(s.MissingAthlete))
}

// UpdateQueueSize sets the number of pending refresh requests.
func UpdateQueueSize(size int) {
	globalManager.refreshQueueSize.Set(float64(size))
}

// RecordQueueFull counts a rejected refresh request.
func RecordQueueFull() {
	globalManager.refreshQueueFull.Inc()
}

// RecordCacheOp counts a row cache operation, e.g. ("load", "hit").
func RecordCacheOp(op, result string) {
	globalManager.cacheOps.WithLabelValues(op, result).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
