package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMetrics_Registered verifies every metric a resolve or mutation call
// touches is registered with the default gatherer at package init.
func TestMetrics_Registered(t *testing.T) {
	// A vector with no children is registered but not gathered, so give each
	// vector one series before gathering.
	MutationsTotal.WithLabelValues("grant", "ok")
	MutationDuration.WithLabelValues("grant")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, family := range families {
		registered[family.GetName()] = true
	}

	for _, name := range []string{
		"capbit_resolve_latency_seconds",
		"capbit_mutations_total",
		"capbit_mutation_duration_seconds",
		"capbit_bootstrapped",
		"capbit_entities_total",
	} {
		assert.True(t, registered[name], "metric %q should be registered", name)
	}
}

// TestMetrics_MutationsTotal_LabeledByOperationAndOutcome verifies that a
// permission_denied grant and an ok grant land in distinct counter buckets,
// the way engine.mutate labels them.
func TestMetrics_MutationsTotal_LabeledByOperationAndOutcome(t *testing.T) {
	initialOK := testutil.ToFloat64(MutationsTotal.WithLabelValues("grant", "ok"))
	initialDenied := testutil.ToFloat64(MutationsTotal.WithLabelValues("grant", "permission_denied"))

	MutationsTotal.WithLabelValues("grant", "ok").Inc()
	MutationsTotal.WithLabelValues("grant", "permission_denied").Inc()
	MutationsTotal.WithLabelValues("grant", "permission_denied").Inc()

	assert.Equal(t, initialOK+1, testutil.ToFloat64(MutationsTotal.WithLabelValues("grant", "ok")))
	assert.Equal(t, initialDenied+2, testutil.ToFloat64(MutationsTotal.WithLabelValues("grant", "permission_denied")))
}

// histogramSamples returns how many observations the registered histogram
// called name holds in the series whose label values are labelValues (no
// values selects an unlabeled histogram), or 0 if that series does not exist.
func histogramSamples(t *testing.T, name string, labelValues ...string) uint64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	series:
		for _, m := range family.GetMetric() {
			labels := m.GetLabel()
			if len(labels) != len(labelValues) {
				continue
			}
			for i, l := range labels {
				if l.GetValue() != labelValues[i] {
					continue series
				}
			}
			return m.GetHistogram().GetSampleCount()
		}
	}
	return 0
}

// TestTimer_ObserveDurationVec_BucketsByOperation verifies that
// Timer.ObserveDurationVec records one observation into the set_role series
// of MutationDuration, the way SetRole and the shared mutate() helper both
// call it.
func TestTimer_ObserveDurationVec_BucketsByOperation(t *testing.T) {
	before := histogramSamples(t, "capbit_mutation_duration_seconds", "set_role")

	timer := NewTimer()
	time.Sleep(time.Millisecond)
	timer.ObserveDurationVec(MutationDuration, "set_role")

	after := histogramSamples(t, "capbit_mutation_duration_seconds", "set_role")
	assert.Equal(t, before+1, after)
}

// TestTimer_ObserveDuration_RecordsToResolveLatency verifies a resolve-path
// observation is visible on the shared ResolveLatency histogram.
func TestTimer_ObserveDuration_RecordsToResolveLatency(t *testing.T) {
	before := histogramSamples(t, "capbit_resolve_latency_seconds")

	timer := NewTimer()
	timer.ObserveDuration(ResolveLatency)

	after := histogramSamples(t, "capbit_resolve_latency_seconds")
	assert.Equal(t, before+1, after)
}

// TestTimer_Duration_Monotonic verifies the elapsed-time accessor Duration
// grows as time passes.
func TestTimer_Duration_Monotonic(t *testing.T) {
	timer := NewTimer()
	time.Sleep(10 * time.Millisecond)
	first := timer.Duration()
	time.Sleep(10 * time.Millisecond)
	second := timer.Duration()

	assert.Greater(t, second, first)
}

// TestEntitiesTotal_Gauge verifies the create-entity count gauge the CLI's
// stats command samples can be set and read back.
func TestEntitiesTotal_Gauge(t *testing.T) {
	EntitiesTotal.Set(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(EntitiesTotal))
}

// TestBootstrapped_Gauge verifies the bootstrap gauge toggles between 0 and
// 1 the way cmd/capbit's bootstrap command reports completion.
func TestBootstrapped_Gauge(t *testing.T) {
	Bootstrapped.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(Bootstrapped))

	Bootstrapped.Set(1)
	assert.Equal(t, float64(1), testutil.ToFloat64(Bootstrapped))
}
