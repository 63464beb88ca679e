package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/tzvibm/capbit/pkg/capbiterr"
	"github.com/tzvibm/capbit/pkg/log"
	bolt "go.etcd.io/bbolt"
)

// Env is the open storage environment: one bbolt database file holding every
// keyspace the engine needs. There must be exactly one Env per database path
// within a process, or bbolt's own file lock will refuse a second
// open.
type Env struct {
	db *bolt.DB
}

// Init opens (creating if necessary) the environment at path and ensures
// every bucket exists. A freshly created environment answers all reads with
// "no entities" and denies all mutations, since bootstrap has not yet run.
func Init(path string) (*Env, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, classifyOpenErr(path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, capbiterr.Wrap(capbiterr.Io, "initialize buckets", err)
	}

	log.WithComponent("storage").Info().Str("path", path).Msg("environment initialized")
	return &Env{db: db}, nil
}

func classifyOpenErr(path string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "timeout"):
		return capbiterr.Wrap(capbiterr.Io, fmt.Sprintf("open %s: database locked by another process", path), err)
	default:
		return capbiterr.Wrap(capbiterr.Io, fmt.Sprintf("open %s", path), err)
	}
}

// Read executes fn against a read-only, consistent snapshot. Any number of
// read transactions may be open concurrently, and a read transaction never
// blocks or is blocked by writers.
func (e *Env) Read(fn func(tx *bolt.Tx) error) error {
	if e == nil || e.db == nil {
		return capbiterr.ErrNotInitialized
	}
	if err := e.db.View(fn); err != nil {
		return classifyTxErr(err)
	}
	return nil
}

// Write executes fn against a mutable transaction. Write transactions are
// globally serialized by bbolt: at most one is open at a time. The
// transaction commits if fn returns nil and aborts (rolling back every
// change made inside it) if fn returns a non-nil error or panics.
func (e *Env) Write(fn func(tx *bolt.Tx) error) error {
	if e == nil || e.db == nil {
		return capbiterr.ErrNotInitialized
	}
	if err := e.db.Update(fn); err != nil {
		return classifyTxErr(err)
	}
	return nil
}

func classifyTxErr(err error) error {
	switch err {
	case bolt.ErrDatabaseNotOpen:
		return capbiterr.ErrNotInitialized
	case bolt.ErrDatabaseReadOnly:
		return capbiterr.Wrap(capbiterr.Io, "database is read-only", err)
	}
	if _, ok := capbiterr.KindOf(err); ok {
		return err
	}
	msg := err.Error()
	if strings.Contains(msg, "map size") || strings.Contains(msg, "no space") || strings.Contains(msg, "database or disk is full") {
		return capbiterr.Wrap(capbiterr.StorageFull, "commit failed", err)
	}
	return capbiterr.Wrap(capbiterr.Io, "transaction failed", err)
}

// Close releases the environment's file handle and memory map. It does not
// remove the underlying file.
func (e *Env) Close() error {
	if e == nil || e.db == nil {
		return nil
	}
	return e.db.Close()
}
