package engine

import (
	"github.com/tzvibm/capbit/pkg/capbiterr"
	"github.com/tzvibm/capbit/pkg/log"
	"github.com/tzvibm/capbit/pkg/metrics"
	"github.com/tzvibm/capbit/pkg/model"
	"github.com/tzvibm/capbit/pkg/resolver"
	"github.com/tzvibm/capbit/pkg/types"
	bolt "go.etcd.io/bbolt"
)

// Grant records that subject holds role on object. Requires GRANT on
// _system. At most one grant exists per (subject, object); a second call
// overwrites the role.
func (e *Engine) Grant(actor, subject, object types.EntityID, role uint64) error {
	return e.mutate("grant", actor, requiredGrant, func(tx *bolt.Tx) error {
		return model.PutGrant(tx, uint64(subject), uint64(object), role)
	})
}

// Revoke removes the grant for (subject, object), if any. Requires REVOKE
// on _system. Nothing stops an actor from revoking their own _owner
// grant, including the last one — see the package doc comment.
func (e *Engine) Revoke(actor, subject, object types.EntityID) error {
	return e.mutate("revoke", actor, requiredRevoke, func(tx *bolt.Tx) error {
		return model.DeleteGrant(tx, uint64(subject), uint64(object))
	})
}

// SetRole defines what role means on object. Requires UPDATE_ROLE if a
// mask is already defined for (object, role), or CREATE_ROLE otherwise.
// Setting the same (object, role, mask) twice is a no-op on the second
// call's effect, though it still costs a write transaction.
func (e *Engine) SetRole(actor, object types.EntityID, role, mask uint64) error {
	timer := metrics.NewTimer()

	err := e.env.Write(func(tx *bolt.Tx) error {
		required := requiredCreateRole
		if _, exists := model.GetRole(tx, uint64(object), role); exists {
			required = requiredUpdateRole
		}
		if !resolver.Check(tx, actor, types.System, required) {
			return capbiterr.ErrPermissionDenied
		}
		return model.PutRole(tx, uint64(object), role, mask)
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if kind, ok := capbiterr.KindOf(err); ok && kind == capbiterr.PermissionDenied {
			outcome = "permission_denied"
		}
	}
	metrics.MutationsTotal.WithLabelValues("set_role", outcome).Inc()
	timer.ObserveDurationVec(metrics.MutationDuration, "set_role")
	if err != nil {
		log.WithObject(uint64(object)).Warn().
			Err(err).
			Str("component", "engine").
			Str("op", "set_role").
			Uint64("actor", uint64(actor)).
			Msg("mutation denied or failed")
	}
	return err
}

// DeleteRole removes the role mask definition for (object, role), if any.
// Requires DELETE_ROLE on _system. Existing grants referencing role are
// untouched; the resolver falls back to treating role as a literal mask.
func (e *Engine) DeleteRole(actor, object types.EntityID, role uint64) error {
	return e.mutate("delete_role", actor, requiredDeleteRole, func(tx *bolt.Tx) error {
		return model.DeleteRole(tx, uint64(object), role)
	})
}

// SetInherit records that, on object, child inherits from parent. Requires
// SET_INHERIT on _system. No cycle detection is performed on write — the
// resolver's depth bound is the only defense.
func (e *Engine) SetInherit(actor, object, child, parent types.EntityID) error {
	return e.mutate("set_inherit", actor, requiredSetInherit, func(tx *bolt.Tx) error {
		return model.PutInherit(tx, uint64(object), uint64(child), uint64(parent))
	})
}

// RemoveInherit removes the inheritance edge for (object, child), if any.
// Requires REMOVE_INHERIT on _system.
func (e *Engine) RemoveInherit(actor, object, child types.EntityID) error {
	return e.mutate("remove_inherit", actor, requiredRemoveInherit, func(tx *bolt.Tx) error {
		return model.DeleteInherit(tx, uint64(object), uint64(child))
	})
}
