// Package errors defines the sentinel errors services return and handlers
// map to HTTP status codes. Services wrap a sentinel with context via the
// helpers below; handlers match with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the requested resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied: the caller is authenticated but not allowed
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput: the request payload or parameters fail validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized: missing or invalid session
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict: the operation conflicts with current state
	ErrConflict = errors.New("conflict")

	// ErrInternal: an unexpected failure the caller cannot act on
	ErrInternal = errors.New("internal error")
)

// NotFoundError wraps ErrNotFound with the missing resource's name
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// AccessDeniedError wraps ErrAccessDenied with the denial reason.
// An empty reason returns the bare sentinel.
func AccessDeniedError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrAccessDenied)
	}
	return ErrAccessDenied
}

// InvalidInputError wraps ErrInvalidInput with the offending field and reason
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// InternalError wraps ErrInternal with a short description
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}
