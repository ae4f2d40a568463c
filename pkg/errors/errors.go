// Package errors defines the error taxonomy shared by every feature. Handlers
// translate these into HTTP responses; services and repositories return them
// wrapped with context.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCapacity          = errors.New("participant capacity reached")
	ErrAlreadyJoined     = errors.New("already joined")
	ErrSelfReport        = errors.New("cannot report yourself")
	ErrConcurrency       = errors.New("concurrent update conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
)

// Code is a machine-readable error code sent to API clients.
type Code string

const (
	CodeUnknown           Code = "INTERNAL_ERROR"
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION_FAILED"
	CodeInvalidTransition Code = "INVALID_STATUS_TRANSITION"
	CodeCapacity          Code = "CAPACITY_REACHED"
	CodeAlreadyJoined     Code = "ALREADY_JOINED"
	CodeSelfReport        Code = "SELF_REPORT"
	CodeConcurrency       Code = "CONCURRENT_UPDATE"
	CodeUnauthorized      Code = "AUTH_FAILED"
	CodeForbidden         Code = "FORBIDDEN"
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrValidation, CodeValidation},
	{ErrInvalidTransition, CodeInvalidTransition},
	{ErrCapacity, CodeCapacity},
	{ErrAlreadyJoined, CodeAlreadyJoined},
	{ErrSelfReport, CodeSelfReport},
	{ErrConcurrency, CodeConcurrency},
	{ErrNotFound, CodeNotFound},
	{ErrUnauthorized, CodeUnauthorized},
	{ErrForbidden, CodeForbidden},
}

// CodeOf returns the code of the first taxonomy sentinel err matches.
func CodeOf(err error) Code {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeUnknown
}

// ValidationError describes a constraint violation on a single field.
type ValidationError struct {
	Field   string
	Message string
}

// Validation returns a *ValidationError for field.
func Validation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransitionError reports a status machine edge that is not permitted.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %q to %q", e.Entity, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// NotFound wraps ErrNotFound with the kind of entity that was missing.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}
