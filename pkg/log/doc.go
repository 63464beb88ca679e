/*
Package log provides structured logging for capbit using zerolog.

A single global Logger is initialized once via Init, which reads its level
and output format straight from pkg/config.Config instead of a parallel
logging config — the CLI's flags/env/YAML layering already resolved those
two fields, so Init just applies them. Logger is shared by the storage,
engine, and CLI layers. Child loggers are created with WithComponent (which
layer logged this), WithActor (which subject triggered it), and WithObject
(which entity it concerns) so that a permission denial or a commit failure
carries enough context to reconstruct what happened without grepping
multiple packages.

The resolver never logs: it is the hot path answering permission checks
in microseconds, and must not allocate or perform I/O.
*/
package log
