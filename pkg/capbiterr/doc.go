// Package capbiterr defines the exhaustive error taxonomy shared by every
// layer of capbit: storage, the tuple model, the resolver, and the
// protected API. Errors returned by storage.Init and by every transaction
// run through storage.Env's Read and Write (and so by the engine operations
// built on them) carry one of the Kind values declared here. Config loading,
// CLI argument parsing, and Close return plain errors.
package capbiterr
