// Package apperrors defines the error kinds the service distinguishes at its
// HTTP boundary. Controllers map them to status codes with errors.As/Is;
// everything else is treated as a persistence failure.
package apperrors

import "fmt"

// ValidationError rejects malformed input before any store call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a lookup resolved to nothing (e.g. an unowned friend
// code). Retrying with different input is fine.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NewNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidOperationError means the request was well-formed but not allowed,
// like adding yourself as a friend.
type InvalidOperationError struct {
	Msg string
}

func (e *InvalidOperationError) Error() string { return e.Msg }

func NewInvalidOperation(format string, args ...any) *InvalidOperationError {
	return &InvalidOperationError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a failed store call. Not retried automatically.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
