package resolver

import (
	"github.com/tzvibm/capbit/pkg/model"
	"github.com/tzvibm/capbit/pkg/types"
	bolt "go.etcd.io/bbolt"
)

// MaxDepth bounds the inheritance walk. Any chain longer than MaxDepth
// hops contributes nothing beyond the first MaxDepth; this is also the
// only defense against a cycle, since set_inherit performs no
// write-time cycle detection.
const MaxDepth = 10

// Resolve computes the effective permission mask subject holds on object,
// by OR-ing in a role mask at every hop of the per-object inheritance
// chain starting at subject. A subject with no grant on object still
// traverses inheritance: the walk is driven by inherit, not by grants.
// Resolution against a nonexistent object returns 0, never an error.
func Resolve(tx *bolt.Tx, subject, object types.EntityID) types.Mask {
	var mask types.Mask
	current := uint64(subject)
	obj := uint64(object)

	for step := 0; step <= MaxDepth; step++ {
		if role, ok := model.GetGrant(tx, current, obj); ok {
			if m, ok := model.GetRole(tx, obj, role); ok {
				mask |= types.Mask(m)
			} else {
				// No defined role mask: the role id itself acts as the
				// literal mask.
				mask |= types.Mask(role)
			}
		}

		parent, ok := model.GetInherit(tx, obj, current)
		if !ok {
			break
		}
		current = parent
	}

	return mask
}

// Check reports whether subject holds every bit of required on object.
func Check(tx *bolt.Tx, subject, object types.EntityID, required types.Mask) bool {
	return Resolve(tx, subject, object).Held(required)
}
