// Package apperrors defines the typed error taxonomy shared by all flows.
// Every core operation returns one of these instead of raising through the
// stack; the HTTP boundary maps them to the uniform error body.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error with an associated HTTP status and optional details.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error without changing the client-visible
// status or message.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Status: e.Status, Message: e.Message, Details: e.Details, cause: cause}
}

// Validation reports malformed or missing input (400).
func Validation(message string, details any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Details: details}
}

// Unauthorized reports a failed or missing proof of identity (401).
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden reports an authenticated caller lacking the required role (403).
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// Conflict reports a uniqueness violation (409).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// TooManyRequests reports a rate-limited caller (429).
func TooManyRequests(message string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: message}
}

// NotFound reports an unknown route or resource (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Internal reports an infrastructure failure (500). The cause is kept for
// logging; clients only ever see the message.
func Internal(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, cause: cause}
}

// From coerces any error into an *Error, wrapping unknown errors as a
// generic 500 so infrastructure details never leak to clients.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal server error", err)
}
