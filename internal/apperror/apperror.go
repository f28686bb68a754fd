// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps each kind to a status
// code in handler/response.go. Check kinds with errors.Is against the
// sentinels below — AppError wraps them so the chain stays intact.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrInvalidUpdate = errors.New("invalid update")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUpstream      = errors.New("upstream error")
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
)

type AppError struct {
	Err     error  // sentinel identifying the kind
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
	Status  int    // optional: remote status for upstream errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

func Duplicate(resource, key string) *AppError {
	return &AppError{
		Err:     ErrDuplicate,
		Message: fmt.Sprintf("duplicate %s: %s", resource, key),
	}
}

// InvalidUpdate is returned when a partial update carries no fields.
// An empty patch is always a caller bug, never a legitimate no-op.
func InvalidUpdate() *AppError {
	return &AppError{
		Err:     ErrInvalidUpdate,
		Message: "no fields to update",
	}
}

// Unauthorized deliberately uses one message for both "no such user" and
// "wrong password" so responses can't be used for username enumeration.
func Unauthorized() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: "invalid username/password",
	}
}

// Upstream wraps a remote catalog failure, carrying the remote HTTP status
// for observability. 404s are never mapped here — the catalog client
// converts those to an absence marker instead.
func Upstream(status int, message string) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: message,
		Status:  status,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
