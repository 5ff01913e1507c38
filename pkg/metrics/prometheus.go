// Package metrics provides Prometheus metrics for the match simulation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Simulation outcomes
	matchesSimulated *prometheus.CounterVec // by mode
	matchRating      prometheus.Histogram
	finishTypes      *prometheus.CounterVec // by finish type
	injuries         *prometheus.CounterVec // by severity
	refereeIncidents *prometheus.CounterVec // by category
	refereeSwaps     prometheus.Counter

	// Warnings surfaced by the engine (observability, not control flow)
	warnings *prometheus.CounterVec // by kind

	// Bulk path health
	duplicateMatches  prometheus.Counter
	simulationLatency prometheus.Histogram
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueues     prometheus.Counter
	queueDequeues     prometheus.Counter
	queueErrors       prometheus.Counter
	workerActive      prometheus.Gauge
	workerErrors      prometheus.Counter

	// Roster scale
	rosterCompetitors prometheus.Gauge
	rosterReferees    prometheus.Gauge
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
		namespace:        "kayfabe",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.matchesSimulated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_simulated_total",
		Help:      "Total number of matches simulated, by simulation mode",
	}, []string{"mode"})

	m.matchRating = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_rating",
		Help:      "Distribution of match quality ratings (0-100)",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})

	m.finishTypes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "finish_types_total",
		Help:      "Total number of match finishes, by finish type",
	}, []string{"finish"})

	m.injuries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "injuries_total",
		Help:      "Total number of competitor injuries, by severity",
	}, []string{"severity"})

	m.refereeIncidents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "referee_incidents_total",
		Help:      "Total number of in-match referee incidents, by category",
	}, []string{"category"})

	m.refereeSwaps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "referee_replacements_total",
		Help:      "Total number of mid-match referee replacements",
	})

	m.warnings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warnings_total",
		Help:      "Total number of non-fatal simulation warnings, by kind",
	}, []string{"kind"})

	m.duplicateMatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_matches_total",
		Help:      "Total number of matches rejected because they were already simulated",
	})

	m.simulationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulation_latency_milliseconds",
		Help:      "Histogram of per-match simulation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current size of the match queue (backlog indicator)",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured capacity of the match queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization",
		Help:      "Queue utilization as a ratio of size to capacity",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueues_total",
		Help:      "Total number of matches enqueued for bulk simulation",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeues_total",
		Help:      "Total number of matches dequeued by workers",
	})

	m.queueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_errors_total",
		Help:      "Total number of enqueue failures (full or closed queue)",
	})

	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Current number of active simulation workers",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of worker-side simulation failures",
	})

	m.rosterCompetitors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_competitors",
		Help:      "Number of competitors in the roster context",
	})

	m.rosterReferees = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_referees",
		Help:      "Number of referees in the roster context",
	})
}

// Registry returns the registry backing the global manager, for exposition.
func Registry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers operating on the global manager.

// RecordMatchSimulated increments the simulated-match counter for a mode.
func RecordMatchSimulated(mode string) {
	if globalManager.enabled {
		globalManager.matchesSimulated.WithLabelValues(mode).Inc()
	}
}

// RecordMatchRating observes a final match rating.
func RecordMatchRating(rating float64) {
	if globalManager.enabled {
		globalManager.matchRating.Observe(rating)
	}
}

// RecordFinishType increments the finish-type counter.
func RecordFinishType(finish string) {
	if globalManager.enabled {
		globalManager.finishTypes.WithLabelValues(finish).Inc()
	}
}

// RecordInjury increments the injury counter for a severity label.
func RecordInjury(severity string) {
	if globalManager.enabled {
		globalManager.injuries.WithLabelValues(severity).Inc()
	}
}

// RecordRefereeIncident increments the incident counter for a category.
func RecordRefereeIncident(category string) {
	if globalManager.enabled {
		globalManager.refereeIncidents.WithLabelValues(category).Inc()
	}
}

// RecordRefereeReplacement increments the mid-match replacement counter.
func RecordRefereeReplacement() {
	if globalManager.enabled {
		globalManager.refereeSwaps.Inc()
	}
}

// RecordWarning increments the warning counter for a kind.
func RecordWarning(kind string) {
	if globalManager.enabled {
		globalManager.warnings.WithLabelValues(kind).Inc()
	}
}

// RecordDuplicateMatch increments the duplicate-match counter.
func RecordDuplicateMatch() {
	if globalManager.enabled {
		globalManager.duplicateMatches.Inc()
	}
}

// RecordSimulationLatency observes a per-match simulation latency in ms.
func RecordSimulationLatency(ms float64) {
	if globalManager.enabled {
		globalManager.simulationLatency.Observe(ms)
	}
}

// UpdateQueueSize sets the current queue size gauge.
func UpdateQueueSize(size int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(size))
	}
}

// UpdateQueueCapacity sets the queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(capacity))
	}
}

// UpdateQueueUtilization sets the queue utilization gauge.
func UpdateQueueUtilization(utilization float64) {
	if globalManager.enabled {
		globalManager.queueUtilization.Set(utilization)
	}
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	if globalManager.enabled {
		globalManager.queueEnqueues.Inc()
	}
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	if globalManager.enabled {
		globalManager.queueDequeues.Inc()
	}
}

// RecordQueueError increments the queue error counter.
func RecordQueueError() {
	if globalManager.enabled {
		globalManager.queueErrors.Inc()
	}
}

// UpdateWorkerCount sets the active worker gauge.
func UpdateWorkerCount(count int) {
	if globalManager.enabled {
		globalManager.workerActive.Set(float64(count))
	}
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	if globalManager.enabled {
		globalManager.workerErrors.Inc()
	}
}

// UpdateRosterCounts sets the roster scale gauges.
func UpdateRosterCounts(competitors, referees int) {
	if globalManager.enabled {
		globalManager.rosterCompetitors.Set(float64(competitors))
		globalManager.rosterReferees.Set(float64(referees))
	}
}
