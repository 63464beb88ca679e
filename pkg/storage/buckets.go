package storage

// Bucket names for the engine's keyspaces. Declared as []byte
// rather than string constants because bbolt's bucket API takes []byte and
// every Tx call in this module would otherwise re-convert on each call.
var (
	BucketMeta            = []byte("meta")
	BucketGrants          = []byte("grants")
	BucketGrantsByObject  = []byte("grants_by_object")
	BucketRoles           = []byte("roles")
	BucketInherit         = []byte("inherit")
	BucketEntityByLabel   = []byte("entity_by_label")
	BucketLabelByEntity   = []byte("label_by_entity")
	// BucketBitLabels is reserved for an external bit-labeling UI.
	// Not read or written by the core.
	BucketBitLabels = []byte("bit_labels")
)

var allBuckets = [][]byte{
	BucketMeta,
	BucketGrants,
	BucketGrantsByObject,
	BucketRoles,
	BucketInherit,
	BucketEntityByLabel,
	BucketLabelByEntity,
	BucketBitLabels,
}

// Meta keys within BucketMeta.
var (
	metaKeyBootstrapped  = []byte("bootstrapped")
	metaKeyNextEntityID  = []byte("next_entity_id")
)
