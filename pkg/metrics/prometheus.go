// Package metrics provides Prometheus metrics for the scout shortlist engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "scout"
	defaultSubsystem = "shortlist"
)

// Batch run outcomes.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Manager manages all Prometheus metrics for the scout engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Dataset quality
	candidatesLoaded prometheus.Gauge
	squadLoaded      prometheus.Gauge
	duplicateNames   prometheus.Counter
	malformedPrices  prometheus.Counter
	missingAbility   prometheus.Counter
	skippedRows      *prometheus.CounterVec

	// Policy and scoring
	policyResolutions *prometheus.CounterVec
	scoringLatency    prometheus.Histogram
	shortlistSize     prometheus.Gauge
	workerCount       prometheus.Gauge

	// Batch lifecycle
	batchRuns     *prometheus.CounterVec
	batchDuration prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
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
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.candidatesLoaded = m.gauge("candidates_loaded", "Number of candidates loaded in the last batch")
	m.squadLoaded = m.gauge("squad_loaded", "Number of squad members loaded in the last batch")
	m.duplicateNames = m.counter("duplicate_names_total", "Total number of candidate rows dropped for a repeated name")
	m.malformedPrices = m.counter("malformed_prices_total", "Total number of transfer values that could not be parsed and scored as 0")
	m.missingAbility = m.counter("missing_ability_total", "Total number of ability cells that were empty, non-numeric or out of range")
	m.skippedRows = m.counterVec("skipped_rows_total", "Total number of dataset rows skipped as invalid", "table")

	m.policyResolutions = m.counterVec("policy_resolutions_total", "Total number of policy resolutions by strategy", "strategy")
	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scoring_latency_milliseconds",
		Help:        "Histogram of per-candidate scoring latency in milliseconds",
		Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		ConstLabels: m.constLabels,
	})
	m.shortlistSize = m.gauge("shortlist_size", "Number of ranked candidates in the last batch")
	m.workerCount = m.gauge("worker_count", "Number of workers used by the scoring pass")

	m.batchRuns = m.counterVec("batch_runs_total", "Total number of batch runs by outcome", "status")
	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_duration_seconds",
		Help:        "Wall time of a complete batch run in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component",
		"component", "error_type")
}

// SetCandidatesLoaded sets the number of candidates loaded.
func (m *Manager) SetCandidatesLoaded(n int) { m.candidatesLoaded.Set(float64(n)) }

// SetSquadLoaded sets the number of squad members loaded.
func (m *Manager) SetSquadLoaded(n int) { m.squadLoaded.Set(float64(n)) }

// RecordDuplicateName increments the duplicate names counter.
func (m *Manager) RecordDuplicateName() { m.duplicateNames.Inc() }

// RecordMalformedPrice increments the malformed prices counter.
func (m *Manager) RecordMalformedPrice() { m.malformedPrices.Inc() }

// RecordMissingAbility increments the missing ability counter.
func (m *Manager) RecordMissingAbility() { m.missingAbility.Inc() }

// RecordSkippedRow increments the skipped rows counter for a table.
func (m *Manager) RecordSkippedRow(table string) { m.skippedRows.WithLabelValues(table).Inc() }

// RecordPolicyResolution increments the resolutions counter for a strategy.
func (m *Manager) RecordPolicyResolution(strategy string) {
	m.policyResolutions.WithLabelValues(strategy).Inc()
}

// RecordScoringLatency records scoring latency in milliseconds.
func (m *Manager) RecordScoringLatency(latencyMs float64) { m.scoringLatency.Observe(latencyMs) }

// SetShortlistSize sets the number of ranked candidates.
func (m *Manager) SetShortlistSize(n int) { m.shortlistSize.Set(float64(n)) }

// SetWorkerCount sets the scoring pass worker count.
func (m *Manager) SetWorkerCount(n int) { m.workerCount.Set(float64(n)) }

// RecordBatchRun records the outcome and duration of a batch run.
func (m *Manager) RecordBatchRun(status string, seconds float64) {
	m.batchRuns.WithLabelValues(status).Inc()
	m.batchDuration.Observe(seconds)
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// Package-level helpers backed by the global manager.

// SetCandidatesLoaded sets the number of candidates loaded.
func SetCandidatesLoaded(n int) { globalManager.SetCandidatesLoaded(n) }

// SetSquadLoaded sets the number of squad members loaded.
func SetSquadLoaded(n int) { globalManager.SetSquadLoaded(n) }

// RecordDuplicateName increments the duplicate names counter.
func RecordDuplicateName() { globalManager.RecordDuplicateName() }

// RecordMalformedPrice increments the malformed prices counter.
func RecordMalformedPrice() { globalManager.RecordMalformedPrice() }

// RecordMissingAbility increments the missing ability counter.
func RecordMissingAbility() { globalManager.RecordMissingAbility() }

// RecordSkippedRow increments the skipped rows counter for a table.
func RecordSkippedRow(table string) { globalManager.RecordSkippedRow(table) }

// RecordPolicyResolution increments the resolutions counter for a strategy.
func RecordPolicyResolution(strategy string) { globalManager.RecordPolicyResolution(strategy) }

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) { globalManager.RecordScoringLatency(latencyMs) }

// SetShortlistSize sets the number of ranked candidates.
func SetShortlistSize(n int) { globalManager.SetShortlistSize(n) }

// SetWorkerCount sets the scoring pass worker count.
func SetWorkerCount(n int) { globalManager.SetWorkerCount(n) }

// RecordBatchRun records the outcome and duration of a batch run.
func RecordBatchRun(status string, seconds float64) { globalManager.RecordBatchRun(status, seconds) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
