package model

import (
	"bytes"

	"github.com/tzvibm/capbit/pkg/storage"
	bolt "go.etcd.io/bbolt"
)

// RoleMask is one row of the roles relation: on object, role means mask.
type RoleMask struct {
	Object uint64
	Role   uint64
	Mask   uint64
}

// GetRole returns the mask role means on object, if a role mask has been
// defined for the pair. A miss is not an error: the resolver falls back
// to treating the role id itself as the mask.
func GetRole(tx *bolt.Tx, object, role uint64) (mask uint64, ok bool) {
	v := tx.Bucket(storage.BucketRoles).Get(storage.EncodePair(object, role))
	if len(v) != 8 {
		return 0, false
	}
	return storage.DecodeU64(v), true
}

// PutRole defines (or redefines) what role means on object.
func PutRole(tx *bolt.Tx, object, role, mask uint64) error {
	return tx.Bucket(storage.BucketRoles).Put(storage.EncodePair(object, role), storage.EncodeU64(mask))
}

// DeleteRole removes the role mask definition for (object, role). Grants
// referencing the role are untouched: the resolver falls back to the
// role id as a literal mask once the definition is gone.
func DeleteRole(tx *bolt.Tx, object, role uint64) error {
	return tx.Bucket(storage.BucketRoles).Delete(storage.EncodePair(object, role))
}

// IterRolesByObject lists every role mask defined on object.
func IterRolesByObject(tx *bolt.Tx, object uint64) []RoleMask {
	prefix := storage.EncodeU64(object)
	var out []RoleMask
	c := tx.Bucket(storage.BucketRoles).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		_, role := storage.DecodePair(k)
		out = append(out, RoleMask{Object: object, Role: role, Mask: storage.DecodeU64(v)})
	}
	return out
}
