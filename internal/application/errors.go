package application

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidKind   = errors.New("invalid list kind")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnavailable   = errors.New("backend unavailable")
	ErrBadPagination = errors.New("inconsistent pagination")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BackendError is a non-2xx answer from the REST backend
type BackendError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status), e.Body)
}

// Is maps status codes onto the sentinel errors
func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrUnavailable:
		return e.Status >= 500
	}
	return false
}

// Retryable reports whether repeating the request could succeed
func (e *BackendError) Retryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// MutationError is returned when an optimistic change was rejected
type MutationError struct {
	Action string
	ID     int64
	Err    error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("cannot %s %d: %v", e.Action, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
