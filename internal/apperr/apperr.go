// Package apperr defines the typed failure kinds shared by all services.
// Handlers are the only place these are translated into HTTP responses;
// services never format user-facing text beyond the message itself.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the caller.
type Kind int

const (
	// KindValidation — input fails a domain rule (negative price,
	// non-positive sale quantity, insufficient stock).
	KindValidation Kind = iota + 1
	// KindConflict — uniqueness violation (duplicate username or SKU).
	KindConflict
	// KindNotFound — operation addresses a nonexistent id.
	KindNotFound
	// KindStore — lower-level storage failure, surfaced as-is.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// Error carries a kind, a caller-safe message, and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Msg: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Msg: msg} }

// Store wraps an unexpected storage error. The original error is preserved
// for logging; the message is what handlers may expose.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Msg: "storage error", Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
