package capbiterr

import (
	"errors"
	"fmt"
)

// Kind enumerates the error kinds defined in the capbit error handling
// design. It is exhaustive for the storage layer and the engine: every error
// they return from a transaction or from opening the environment carries one
// of these kinds.
type Kind string

const (
	// NotInitialized is raised when any call is made before Init.
	NotInitialized Kind = "not_initialized"
	// AlreadyBootstrapped is raised by a second call to Bootstrap.
	AlreadyBootstrapped Kind = "already_bootstrapped"
	// PermissionDenied is raised when an actor lacks the required bit on _system.
	PermissionDenied Kind = "permission_denied"
	// NotFound is raised for entity/label lookups where a hit is semantically required.
	NotFound Kind = "not_found"
	// StorageFull is raised when the underlying map or disk is full.
	StorageFull Kind = "storage_full"
	// StorageCorrupt is raised when an on-disk invariant is violated.
	StorageCorrupt Kind = "storage_corrupt"
	// Io is raised for any other I/O failure.
	Io Kind = "io"
)

// Error is the concrete error type returned by capbit operations. It wraps
// an optional cause and always carries a Kind so callers can branch on
// failure category without string matching.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers
// can use errors.Is(err, capbiterr.ErrPermissionDenied) style checks against
// the sentinels below.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New constructs an *Error of the given kind with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind carried by err, if any. Unrecognized errors
// report the zero Kind and false.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Sentinels for errors.Is-style checks against a specific kind, independent
// of message text.
var (
	ErrNotInitialized      = New(NotInitialized, "capbit: not initialized")
	ErrAlreadyBootstrapped = New(AlreadyBootstrapped, "capbit: already bootstrapped")
	ErrPermissionDenied    = New(PermissionDenied, "capbit: permission denied")
	ErrNotFound            = New(NotFound, "capbit: not found")
)
