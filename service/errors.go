package service

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes domain failures. Every exported service operation
// either succeeds or fails with exactly one kind; infrastructure errors are
// wrapped with fmt.Errorf and carry no kind.
type ErrorKind string

const (
	// KindUnauthorized indicates the actor is missing or lacks authority.
	KindUnauthorized ErrorKind = "UNAUTHORIZED"

	// KindInvalidID indicates a referenced identifier is malformed.
	KindInvalidID ErrorKind = "INVALID_ID"

	// KindNotFound indicates a referenced entry or account does not exist.
	KindNotFound ErrorKind = "NOT_FOUND"

	// KindInvalidInput indicates caller-supplied data fails basic shape rules.
	KindInvalidInput ErrorKind = "INVALID_INPUT"

	// KindConflict indicates a uniqueness or state-precondition violation.
	KindConflict ErrorKind = "CONFLICT"

	// KindInvalidState indicates a domain precondition is violated,
	// e.g. drawing from an empty wheel.
	KindInvalidState ErrorKind = "INVALID_STATE"
)

// DomainError is a categorized domain failure
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a DomainError with the given kind and message
func NewError(kind ErrorKind, format string, args ...any) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of a (possibly wrapped) domain error,
// or the empty string for non-domain errors
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
// Uses errors.As to handle wrapped errors.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
