package model

import (
	"github.com/tzvibm/capbit/pkg/storage"
	bolt "go.etcd.io/bbolt"
)

// Labels are a convenience aliasing layer only: the core never consults
// them for authorization decisions, and nothing here checks capability
// bits. Entries are produced by the engine's CreateEntity (when given a
// label) and SetLabel (the CLI's label subcommand).

// GetLabel returns the label assigned to id, if any.
func GetLabel(tx *bolt.Tx, id uint64) (label string, ok bool) {
	v := tx.Bucket(storage.BucketLabelByEntity).Get(storage.EncodeU64(id))
	if v == nil {
		return "", false
	}
	return string(v), true
}

// LookupByLabel returns the id aliased to label, if any.
func LookupByLabel(tx *bolt.Tx, label string) (id uint64, ok bool) {
	v := tx.Bucket(storage.BucketEntityByLabel).Get([]byte(label))
	if len(v) != 8 {
		return 0, false
	}
	return storage.DecodeU64(v), true
}

// PutLabel aliases id to label in both directions. A label already in use
// is silently repointed to the new id; callers wanting uniqueness should
// check LookupByLabel first.
func PutLabel(tx *bolt.Tx, id uint64, label string) error {
	if err := tx.Bucket(storage.BucketLabelByEntity).Put(storage.EncodeU64(id), []byte(label)); err != nil {
		return err
	}
	return tx.Bucket(storage.BucketEntityByLabel).Put([]byte(label), storage.EncodeU64(id))
}

// DeleteLabel removes id's label mapping in both directions, if present.
// Does not touch grants, roles, or inherit rows referencing id: deleting
// an entity does not cascade.
func DeleteLabel(tx *bolt.Tx, id uint64) error {
	label, ok := GetLabel(tx, id)
	if !ok {
		return nil
	}
	if err := tx.Bucket(storage.BucketLabelByEntity).Delete(storage.EncodeU64(id)); err != nil {
		return err
	}
	return tx.Bucket(storage.BucketEntityByLabel).Delete([]byte(label))
}
