/*
Package resolver implements the single hot path of capbit: walking the
per-object inheritance chain from a subject and OR-ing in role masks to
produce the subject's effective permission mask on an object.

Resolve and Check are pure functions of (transaction, subject, object):
identical inputs and database state always yield identical output. They
hold only a read transaction, never allocate beyond the single returned
uint64, and never log — this package has no dependency on pkg/log or
pkg/metrics so that instrumentation stays opt-in at the caller.
*/
package resolver
