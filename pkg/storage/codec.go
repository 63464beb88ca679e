package storage

import "encoding/binary"

// EncodeU64 big-endian encodes n so that byte-lexicographic order matches
// numeric order.
func EncodeU64(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// DecodeU64 decodes a big-endian 8-byte value. It panics if b is shorter
// than 8 bytes, matching binary.BigEndian's own contract; callers must
// check value length against zero (absent key) before decoding.
func DecodeU64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// EncodePair concatenates two big-endian u64s into a 16-byte key, e.g.
// subject∥object or object∥role.
func EncodePair(a, b uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[0:8], a)
	binary.BigEndian.PutUint64(key[8:16], b)
	return key
}

// DecodePair splits a 16-byte key produced by EncodePair.
func DecodePair(key []byte) (a, b uint64) {
	return binary.BigEndian.Uint64(key[0:8]), binary.BigEndian.Uint64(key[8:16])
}
