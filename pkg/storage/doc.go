/*
Package storage provides bbolt-backed persistence for capbit's tuple
relations and auxiliary label maps. It implements the Storage Layer
component of the engine: a memory-mapped, copy-on-write B+tree with
single-writer/multi-reader ACID transactions over a fixed set of named
keyspaces ("buckets").

# Architecture

	┌──────────────────────── BBOLT STORAGE ───────────────────────┐
	│                                                                │
	│  ┌─────────────────────────────────────────────────┐         │
	│  │                     Env                          │         │
	│  │  - File: <path>                                  │         │
	│  │  - Format: B+tree, copy-on-write, mmap'd reads   │         │
	│  │  - Transactions: single writer, N concurrent readers │     │
	│  └──────────────────────┬──────────────────────────┘         │
	│                         │                                     │
	│  ┌──────────────────────▼──────────────────────────┐         │
	│  │                 Bucket Layout                    │         │
	│  │  ┌──────────────────────────────────────┐       │         │
	│  │  │ meta              (fixed keys)        │       │         │
	│  │  │ grants            (subject∥object)    │       │         │
	│  │  │ grants_by_object  (object∥subject)     │       │         │
	│  │  │ roles             (object∥role)        │       │         │
	│  │  │ inherit           (object∥child)       │       │         │
	│  │  │ entity_by_label   (label string)       │       │         │
	│  │  │ label_by_entity   (id:8)               │       │         │
	│  │  │ bit_labels        (object∥bit, unused) │       │         │
	│  │  └──────────────────────────────────────┘       │         │
	│  └──────────────────────┬──────────────────────────┘         │
	│                         │                                     │
	│  ┌──────────────────────▼──────────────────────────┐         │
	│  │           Transaction Management                 │         │
	│  │  - Read:  db.View()   — any number, concurrent   │         │
	│  │  - Write: db.Update() — at most one at a time    │         │
	│  │  - Commit / rollback is automatic on return value│         │
	│  └───────────────────────────────────────────────────┘       │
	└────────────────────────────────────────────────────────────┘

All multi-byte integers are encoded big-endian so that bucket iteration
order matches numeric order — required for prefix scans such as "every
grant held by subject S" or "every grant on object O".
*/
package storage
