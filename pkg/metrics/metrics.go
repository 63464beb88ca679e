package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ResolveLatency times Engine.GetMask and Engine.Check, the hot-path
	// permission lookup. Kept separate from the mutation counters below since it is
	// expected to run orders of magnitude more often.
	ResolveLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "capbit_resolve_latency_seconds",
			Help:    "Time taken to resolve an effective permission mask",
			Buckets: prometheus.DefBuckets,
		},
	)

	// MutationsTotal counts every protected write operation by name and
	// outcome, so a permission_denied spike is visible per-operation.
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capbit_mutations_total",
			Help: "Total number of protected mutation calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// MutationDuration times each protected mutation's write transaction.
	MutationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "capbit_mutation_duration_seconds",
			Help:    "Duration of protected mutation calls by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Bootstrapped is set to 1 when Engine.Bootstrap succeeds in this
	// process. It is not read from the database: a process that opens an
	// environment bootstrapped earlier, or opens none, reports 0.
	Bootstrapped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "capbit_bootstrapped",
			Help: "Whether bootstrap has completed in this process (1) or not (0)",
		},
	)

	// EntitiesTotal tracks the number of allocated entity ids. It is set by
	// the CLI's stats command from the stored id counter; CreateEntity does
	// not update it (its per-call counter and duration are recorded under
	// MutationsTotal and MutationDuration like every other mutation).
	EntitiesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "capbit_entities_total",
			Help: "Total number of allocated entity ids",
		},
	)
)

func init() {
	prometheus.MustRegister(ResolveLatency)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(MutationDuration)
	prometheus.MustRegister(Bootstrapped)
	prometheus.MustRegister(EntitiesTotal)
}

// Handler returns the Prometheus HTTP handler, for use by the CLI's
// serve-metrics command. The engine itself never imports net/http.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
