package model

import (
	"bytes"

	"github.com/tzvibm/capbit/pkg/storage"
	bolt "go.etcd.io/bbolt"
)

// Grant is one row of the grants relation: subject holds role on object.
type Grant struct {
	Subject uint64
	Object  uint64
	Role    uint64
}

// GetGrant returns the role subject holds on object, if any.
func GetGrant(tx *bolt.Tx, subject, object uint64) (role uint64, ok bool) {
	v := tx.Bucket(storage.BucketGrants).Get(storage.EncodePair(subject, object))
	if len(v) != 8 {
		return 0, false
	}
	return storage.DecodeU64(v), true
}

// PutGrant records that subject holds role on object, overwriting any
// previous role for the pair. Updates grants and grants_by_object in
// lockstep so the secondary index never drifts.
func PutGrant(tx *bolt.Tx, subject, object, role uint64) error {
	roleBytes := storage.EncodeU64(role)
	if err := tx.Bucket(storage.BucketGrants).Put(storage.EncodePair(subject, object), roleBytes); err != nil {
		return err
	}
	return tx.Bucket(storage.BucketGrantsByObject).Put(storage.EncodePair(object, subject), roleBytes)
}

// DeleteGrant removes the grant for (subject, object) from both keyspaces.
// A no-op if no such grant exists.
func DeleteGrant(tx *bolt.Tx, subject, object uint64) error {
	if err := tx.Bucket(storage.BucketGrants).Delete(storage.EncodePair(subject, object)); err != nil {
		return err
	}
	return tx.Bucket(storage.BucketGrantsByObject).Delete(storage.EncodePair(object, subject))
}

// IterGrantsBySubject lists every (object, role) pair granted to subject.
func IterGrantsBySubject(tx *bolt.Tx, subject uint64) []Grant {
	prefix := storage.EncodeU64(subject)
	var out []Grant
	c := tx.Bucket(storage.BucketGrants).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		_, object := storage.DecodePair(k)
		out = append(out, Grant{Subject: subject, Object: object, Role: storage.DecodeU64(v)})
	}
	return out
}

// IterGrantsByObject lists every (subject, role) pair granted on object,
// via the grants_by_object secondary index.
func IterGrantsByObject(tx *bolt.Tx, object uint64) []Grant {
	prefix := storage.EncodeU64(object)
	var out []Grant
	c := tx.Bucket(storage.BucketGrantsByObject).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		_, subject := storage.DecodePair(k)
		out = append(out, Grant{Subject: subject, Object: object, Role: storage.DecodeU64(v)})
	}
	return out
}
