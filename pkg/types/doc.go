// Package types defines the core identifiers and permission mask shared by
// every layer of capbit: entity ids, role ids, the 64-bit Mask type, the
// reserved capability bits, and the aggregated role masks seeded at
// bootstrap.
//
// Ids are opaque u64 values. The package does not interpret them beyond the
// handful of reserved constants below; label-to-id aliasing lives in
// pkg/model and is a convenience layer, never authoritative.
package types
