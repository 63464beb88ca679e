package engine

import (
	"github.com/tzvibm/capbit/pkg/metrics"
	"github.com/tzvibm/capbit/pkg/model"
	"github.com/tzvibm/capbit/pkg/resolver"
	"github.com/tzvibm/capbit/pkg/storage"
	"github.com/tzvibm/capbit/pkg/types"
	bolt "go.etcd.io/bbolt"
)

// Check reports whether subject holds every bit of required on object.
// Unprotected: reads require no capability.
func (e *Engine) Check(subject, object types.EntityID, required types.Mask) (bool, error) {
	timer := metrics.NewTimer()
	var held bool
	err := e.env.Read(func(tx *bolt.Tx) error {
		held = resolver.Check(tx, subject, object, required)
		return nil
	})
	timer.ObserveDuration(metrics.ResolveLatency)
	return held, err
}

// GetMask returns the effective permission mask subject holds on object.
func (e *Engine) GetMask(subject, object types.EntityID) (types.Mask, error) {
	timer := metrics.NewTimer()
	var mask types.Mask
	err := e.env.Read(func(tx *bolt.Tx) error {
		mask = resolver.Resolve(tx, subject, object)
		return nil
	})
	timer.ObserveDuration(metrics.ResolveLatency)
	return mask, err
}

// GetRole returns the mask role means on object, and whether it is defined.
func (e *Engine) GetRole(object types.EntityID, role uint64) (mask uint64, ok bool, err error) {
	err = e.env.Read(func(tx *bolt.Tx) error {
		mask, ok = model.GetRole(tx, uint64(object), role)
		return nil
	})
	return mask, ok, err
}

// ListForSubject returns every (object, role) grant held by subject.
func (e *Engine) ListForSubject(subject types.EntityID) ([]model.Grant, error) {
	var grants []model.Grant
	err := e.env.Read(func(tx *bolt.Tx) error {
		grants = model.IterGrantsBySubject(tx, uint64(subject))
		return nil
	})
	return grants, err
}

// ListForObject returns every (subject, role) grant on object.
func (e *Engine) ListForObject(object types.EntityID) ([]model.Grant, error) {
	var grants []model.Grant
	err := e.env.Read(func(tx *bolt.Tx) error {
		grants = model.IterGrantsByObject(tx, uint64(object))
		return nil
	})
	return grants, err
}

// GetLabel returns the label assigned to id, if any.
func (e *Engine) GetLabel(id types.EntityID) (label string, ok bool, err error) {
	err = e.env.Read(func(tx *bolt.Tx) error {
		label, ok = model.GetLabel(tx, uint64(id))
		return nil
	})
	return label, ok, err
}

// LookupByLabel returns the id aliased to label, if any.
func (e *Engine) LookupByLabel(label string) (id types.EntityID, ok bool, err error) {
	err = e.env.Read(func(tx *bolt.Tx) error {
		var rawID uint64
		rawID, ok = model.LookupByLabel(tx, label)
		id = types.EntityID(rawID)
		return nil
	})
	return id, ok, err
}

// EntityCount reports how many entity ids have been allocated so far,
// including the reserved System and Root ids. Sampled by the CLI's stats
// command into capbit_entities_total rather than updated inline on every
// CreateEntity call, to keep that path allocation-light.
func (e *Engine) EntityCount() (uint64, error) {
	var count uint64
	err := e.env.Read(func(tx *bolt.Tx) error {
		count = storage.EntityCount(tx)
		return nil
	})
	return count, err
}
