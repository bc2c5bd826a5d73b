// Package apperrors holds the error taxonomy shared by the services and the
// HTTP layer. Services return these; handlers map them to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is().
var (
	// ErrUnauthorized is returned when an operation requires an
	// authenticated actor and none is present.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the actor is authenticated but does not
	// own the content being mutated.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced target or vote does not
	// exist at the time of mutation.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed input before any transaction
	// is opened.
	ErrValidation = errors.New("invalid input")

	// ErrConflict is returned when concurrent writes collide, e.g. two
	// racing vote inserts hitting the unique index.
	ErrConflict = errors.New("conflict")

	// ErrTransaction is returned when the underlying transaction could not
	// commit. Nothing is persisted in that case.
	ErrTransaction = errors.New("transaction failed")
)

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError carries the offending field and the reason it was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TransactionError wraps the cause of an aborted transaction.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed: %v", e.Err)
}

func (e *TransactionError) Unwrap() error {
	return ErrTransaction
}

// IsClientError reports whether the error is the caller's fault rather than
// a persistence failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict)
}
