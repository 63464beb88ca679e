package engine

import (
	"github.com/tzvibm/capbit/pkg/capbiterr"
	"github.com/tzvibm/capbit/pkg/log"
	"github.com/tzvibm/capbit/pkg/metrics"
	"github.com/tzvibm/capbit/pkg/model"
	"github.com/tzvibm/capbit/pkg/storage"
	"github.com/tzvibm/capbit/pkg/types"
	bolt "go.etcd.io/bbolt"
)

// Engine is the top-level handle applications embed. Exactly one Engine
// should exist per database path within a process: a second Open against
// the same path fails on bbolt's own file lock.
type Engine struct {
	env *storage.Env
}

// Open opens (creating if necessary) the database at path and ensures
// every keyspace exists. A freshly opened, never-bootstrapped database
// answers all reads with "no entities" and denies all mutations, since
// no principal holds any bit on _system yet.
func Open(path string) (*Engine, error) {
	env, err := storage.Init(path)
	if err != nil {
		return nil, err
	}
	return &Engine{env: env}, nil
}

// Close releases the underlying storage environment.
func (e *Engine) Close() error {
	return e.env.Close()
}

// Bootstrap seeds the _system object, the root principal, and the four
// default role masks exactly once. A second call returns
// AlreadyBootstrapped and leaves state untouched. It is the only entry
// point that writes to the tuple model without a capability check.
func (e *Engine) Bootstrap() (systemID, rootID types.EntityID, err error) {
	logger := log.WithComponent("engine")

	err = e.env.Write(func(tx *bolt.Tx) error {
		if storage.IsBootstrapped(tx) {
			return capbiterr.ErrAlreadyBootstrapped
		}

		seeds := []struct {
			role types.RoleID
			mask types.Mask
		}{
			{types.Owner, types.AllBits},
			{types.Admin, types.AdminBits},
			{types.Editor, types.EditorBits},
			{types.Viewer, types.ViewerBits},
		}
		for _, s := range seeds {
			if err := model.PutRole(tx, uint64(types.System), uint64(s.role), uint64(s.mask)); err != nil {
				return err
			}
		}

		if err := model.PutGrant(tx, uint64(types.Root), uint64(types.System), uint64(types.Owner)); err != nil {
			return err
		}

		return storage.SetBootstrapped(tx)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("bootstrap failed")
		return 0, 0, err
	}

	metrics.Bootstrapped.Set(1)
	logger.Info().Msg("bootstrap complete")
	return types.System, types.Root, nil
}

// IsBootstrapped reports whether Bootstrap has already run. Unprotected
// by design: any caller, including one with no grants at all, may ask.
func (e *Engine) IsBootstrapped() (bool, error) {
	var bootstrapped bool
	err := e.env.Read(func(tx *bolt.Tx) error {
		bootstrapped = storage.IsBootstrapped(tx)
		return nil
	})
	return bootstrapped, err
}
