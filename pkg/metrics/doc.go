/*
Package metrics defines and registers capbit's Prometheus metrics.

Metrics are registered once at package init and exposed via Handler for the
CLI's serve-metrics command; the engine package itself never listens on a
socket.

# Metrics Catalog

capbit_resolve_latency_seconds:
  - Histogram of Engine.GetMask/Engine.Check durations.

capbit_mutations_total{operation,outcome}:
  - Counter of protected mutation calls, outcome one of
    "ok"/"permission_denied"/"error".

capbit_mutation_duration_seconds{operation}:
  - Histogram of protected mutation write-transaction durations.

capbit_bootstrapped:
  - Gauge, 1 once Bootstrap has completed in this process, 0 otherwise.

capbit_entities_total:
  - Gauge, sampled by the CLI's stats command.

# Usage

	timer := metrics.NewTimer()
	mask := resolver.Resolve(tx, subject, object)
	timer.ObserveDuration(metrics.ResolveLatency)

# Integration Points

  - pkg/engine: records mutation and bootstrap metrics
  - pkg/resolver: callers record resolve latency; the resolver itself
    never imports this package, to keep the hot path allocation-free
  - cmd/capbit: exposes Handler() on the serve-metrics subcommand
*/
package metrics
