package engine

import (
	"github.com/tzvibm/capbit/pkg/capbiterr"
	"github.com/tzvibm/capbit/pkg/log"
	"github.com/tzvibm/capbit/pkg/metrics"
	"github.com/tzvibm/capbit/pkg/resolver"
	"github.com/tzvibm/capbit/pkg/types"
	bolt "go.etcd.io/bbolt"
)

// mutate runs fn inside a single write transaction after resolving actor's
// mask on _system and checking it against required. The check and the
// mutation happen in the same transaction: a concurrent
// revocation of actor's rights either sequences before the check (and
// denies this call) or after the commit (and leaves the mutation in
// place) — never between.
func (e *Engine) mutate(op string, actor types.EntityID, required types.Mask, fn func(tx *bolt.Tx) error) error {
	timer := metrics.NewTimer()

	err := e.env.Write(func(tx *bolt.Tx) error {
		if !resolver.Check(tx, actor, types.System, required) {
			return capbiterr.ErrPermissionDenied
		}
		return fn(tx)
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if kind, ok := capbiterr.KindOf(err); ok && kind == capbiterr.PermissionDenied {
			outcome = "permission_denied"
		}
	}
	metrics.MutationsTotal.WithLabelValues(op, outcome).Inc()
	timer.ObserveDurationVec(metrics.MutationDuration, op)

	if err != nil {
		log.WithActor(uint64(actor)).Warn().
			Err(err).
			Str("component", "engine").
			Str("op", op).
			Msg("mutation denied or failed")
	}
	return err
}
