// Package errors defines the application error taxonomy shared by the
// service, handlers, and API client. Every user-facing failure is an
// AppError carrying a stable machine code and the HTTP status it maps to.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternal       = errors.New("internal error")
	ErrServiceUnavail = errors.New("service unavailable")
)

// AppError is a structured application error. Code and Message are safe to
// send to clients; Err holds the wrapped cause and never leaves the server.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound reports that a resource does not exist. 404.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// AlreadyExists reports a uniqueness conflict. 409.
func AlreadyExists(resource, field, value string) *AppError {
	return &AppError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s with %s %q already exists", resource, field, value),
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidInput reports a request the server refuses to process. 400.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized reports a missing or failed authentication. 401. The message
// is client-visible, so callers keep it deliberately vague for credential
// failures.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden reports an authenticated caller lacking permission. 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Internal wraps an unexpected failure. 500. The cause stays server-side;
// clients only ever see the generic message.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap adds context to an error while preserving errors.Is/As behavior.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

var sentinelStatus = []struct {
	sentinel error
	status   int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrAlreadyExists, http.StatusConflict},
	{ErrInvalidInput, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrServiceUnavail, http.StatusServiceUnavailable},
}

// HTTPStatus maps err to a response status. An AppError's own status wins;
// bare sentinels fall back to their table entry; anything else is a 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	for _, m := range sentinelStatus {
		if errors.Is(err, m.sentinel) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
