/*
Package engine implements capbit's self-protecting mutation API and
its one-time bootstrap. An Engine wraps a storage.Env: every protected
method opens a single write transaction, resolves the actor's mask on
the reserved _system object inside that same transaction, and either
aborts with PermissionDenied or performs the mutation and commits —
never both a denial and a partial write.

Read operations (Check, GetMask, GetRole, ListForSubject, ListForObject,
GetLabel, LookupByLabel) are unauthenticated by design, including
IsBootstrapped: answering them requires no capability on _system.

# Hazards

Deleting an entity does not cascade to grants, roles, or inheritance
rows that reference it; stale references are the caller's
responsibility. An actor may revoke their own _owner grant on _system
even if they are the last _owner, stripping every principal of
administrative access with no way back in short of re-running
Bootstrap against a fresh environment. Neither is treated as a bug;
both are documented here because an operator reading this package is
the last line of defense.
*/
package engine
