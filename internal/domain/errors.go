// Package domain defines core types, interfaces, and errors for the
// interview dashboard.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates insufficient permissions.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate resource).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthRejectedError indicates the ATS rejected the supplied credentials.
// User-correctable; surfaced inline on the login form.
type AuthRejectedError struct {
	Message string
}

func (e *AuthRejectedError) Error() string { return e.Message }

// TransportError indicates a network-level failure talking to the ATS.
// Retryable by re-submitting the same action.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedSessionError indicates a persisted session payload could not be
// deserialized. Auto-recovered by discarding the payload and treating the
// holder as logged out.
type MalformedSessionError struct {
	Message string
}

func (e *MalformedSessionError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrAuthRejected creates an AuthRejectedError with a formatted message.
func ErrAuthRejected(format string, args ...interface{}) *AuthRejectedError {
	return &AuthRejectedError{Message: fmt.Sprintf(format, args...)}
}

// ErrTransport wraps a network failure with the operation that hit it.
func ErrTransport(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// ErrMalformedSession creates a MalformedSessionError with a formatted message.
func ErrMalformedSession(format string, args ...interface{}) *MalformedSessionError {
	return &MalformedSessionError{Message: fmt.Sprintf(format, args...)}
}
