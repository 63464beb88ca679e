package engine

import (
	"github.com/tzvibm/capbit/pkg/model"
	"github.com/tzvibm/capbit/pkg/storage"
	"github.com/tzvibm/capbit/pkg/types"
	bolt "go.etcd.io/bbolt"
)

// CreateEntity allocates a fresh entity id from the monotonic counter and,
// if label is non-empty, aliases it. Requires CREATE_OBJECT on _system.
func (e *Engine) CreateEntity(actor types.EntityID, label string) (types.EntityID, error) {
	var id uint64
	err := e.mutate("create_entity", actor, requiredCreateObject, func(tx *bolt.Tx) error {
		next, err := storage.NextEntityID(tx)
		if err != nil {
			return err
		}
		id = next
		if label != "" {
			return model.PutLabel(tx, id, label)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return types.EntityID(id), nil
}

// SetLabel aliases an already-allocated id to label. Requires CREATE_OBJECT
// on _system, the same bit CreateEntity uses, since labeling is a form of
// object metadata. The CLI's label subcommand is the only caller outside
// of CreateEntity's own label parameter.
func (e *Engine) SetLabel(actor, id types.EntityID, label string) error {
	return e.mutate("set_label", actor, requiredCreateObject, func(tx *bolt.Tx) error {
		return model.PutLabel(tx, uint64(id), label)
	})
}

// DeleteEntity removes id's label mapping. Requires DELETE_OBJECT on
// _system. This does not cascade to grants, roles, or inheritance rows
// that reference id: stale references are tolerated and are
// the caller's responsibility.
func (e *Engine) DeleteEntity(actor, id types.EntityID) error {
	return e.mutate("delete_entity", actor, requiredDeleteObject, func(tx *bolt.Tx) error {
		return model.DeleteLabel(tx, uint64(id))
	})
}
