// Package apperr carries the error taxonomy the services speak: validation,
// conflict, not-found and integrity. Transport layers map kinds to status
// codes; everything else wraps storage errors with %w as usual.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule failure.
type Kind int

const (
	// Validation marks malformed or out-of-range input, rejected before
	// any mutation.
	Validation Kind = iota + 1
	// Conflict marks duplicate submissions and race-lost uniqueness
	// violations; callers should re-fetch rather than retry as-is.
	Conflict
	// NotFound covers both unknown ids and ids owned by another user, so
	// existence of other users' data never leaks.
	NotFound
	// Integrity marks a storage failure inside a transaction; the whole
	// operation has been rolled back.
	Integrity
)

// Error is a classified business error.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the human-readable message without any wrapped cause,
// suitable for API responses.
func (e *Error) Message() string { return e.msg }

// Validationf builds a Validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{kind: Validation, msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a Conflict error.
func Conflictf(format string, args ...any) *Error {
	return &Error{kind: Conflict, msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{kind: NotFound, msg: fmt.Sprintf(format, args...)}
}

// Integrityf wraps a storage failure.
func Integrityf(err error, format string, args ...any) *Error {
	return &Error{kind: Integrity, msg: fmt.Sprintf(format, args...), err: err}
}

// KindOf extracts the Kind from err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
