/*
Package model provides typed accessors over the three authorization
relations (grants, roles, inherit) and the auxiliary label maps,
built directly on pkg/storage's buckets and codec. It knows nothing
about transactions beyond the *bolt.Tx it is handed, and nothing about
capability checks — that belongs to pkg/engine.

Every accessor here corresponds to one row of the Tuple Model's
operation table. grants is the only relation with a secondary index
(grants_by_object); Put and Delete always touch both keyspaces in the
same call so the pair never drifts out of sync.
*/
package model
