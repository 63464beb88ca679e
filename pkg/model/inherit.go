package model

import (
	"github.com/tzvibm/capbit/pkg/storage"
	bolt "go.etcd.io/bbolt"
)

// GetInherit returns the parent child inherits from on object, if any.
func GetInherit(tx *bolt.Tx, object, child uint64) (parent uint64, ok bool) {
	v := tx.Bucket(storage.BucketInherit).Get(storage.EncodePair(object, child))
	if len(v) != 8 {
		return 0, false
	}
	return storage.DecodeU64(v), true
}

// PutInherit records that, on object, child inherits from parent.
func PutInherit(tx *bolt.Tx, object, child, parent uint64) error {
	return tx.Bucket(storage.BucketInherit).Put(storage.EncodePair(object, child), storage.EncodeU64(parent))
}

// DeleteInherit removes the inheritance edge for (object, child).
func DeleteInherit(tx *bolt.Tx, object, child uint64) error {
	return tx.Bucket(storage.BucketInherit).Delete(storage.EncodePair(object, child))
}
