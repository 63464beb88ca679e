package storage

import bolt "go.etcd.io/bbolt"

// IsBootstrapped reports whether the distinguished bootstrapped flag has
// been set. Called from both read and write transactions.
func IsBootstrapped(tx *bolt.Tx) bool {
	b := tx.Bucket(BucketMeta)
	v := b.Get(metaKeyBootstrapped)
	return len(v) == 1 && v[0] == 1
}

// SetBootstrapped sets the distinguished bootstrapped flag. Only Bootstrap
// ever calls this.
func SetBootstrapped(tx *bolt.Tx) error {
	b := tx.Bucket(BucketMeta)
	return b.Put(metaKeyBootstrapped, []byte{1})
}

// NextEntityID reads the monotonic entity-id counter, increments it, writes
// it back, and returns the id to allocate to the caller. It must be called
// inside the same write transaction that consumes the returned id, so that
// concurrent allocation is impossible: bbolt serializes writers
// globally, so there is no read-modify-write race to guard against here.
func NextEntityID(tx *bolt.Tx) (uint64, error) {
	b := tx.Bucket(BucketMeta)
	v := b.Get(metaKeyNextEntityID)

	var next uint64
	if len(v) == 8 {
		next = DecodeU64(v)
	} else {
		// First allocation: ids 1 (System) and 2 (Root) are reserved by
		// bootstrap, so ordinary allocation starts at 3.
		next = 3
	}

	if err := b.Put(metaKeyNextEntityID, EncodeU64(next+1)); err != nil {
		return 0, err
	}
	return next, nil
}

// EntityCount reports how many entity ids have been allocated so far
// (System and Root, plus every id handed out by NextEntityID). Used by the
// CLI's stats command to sample capbit_entities_total rather than keeping a
// running counter on the create_entity hot path.
func EntityCount(tx *bolt.Tx) uint64 {
	b := tx.Bucket(BucketMeta)
	v := b.Get(metaKeyNextEntityID)
	if len(v) != 8 {
		if IsBootstrapped(tx) {
			return 2 // System, Root
		}
		return 0
	}
	return DecodeU64(v) - 3 + 2
}
