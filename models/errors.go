package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every AppError wraps exactly one of these so callers can
// match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
)

// AppError is a domain failure with a kind, a client-facing message and
// an optional underlying cause.
type AppError struct {
	Kind    error
	Field   string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Is(target error) bool {
	return target == e.Kind
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(resource string, key interface{}) *AppError {
	return &AppError{
		Kind:    ErrNotFound,
		Field:   resource,
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Kind: ErrUnauthenticated, Field: "credentials", Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Field: "authorization", Message: message}
}

func NewConflictError(field, message string) *AppError {
	return &AppError{Kind: ErrConflict, Field: field, Message: message}
}

func NewValidationError(field, message string) *AppError {
	return &AppError{Kind: ErrValidation, Field: field, Message: message}
}
