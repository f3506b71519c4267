// Package apperror carries expected failures from services to the HTTP layer.
package apperror

import (
	"errors"
	"net/http"
	"runtime/debug"
)

// Error is a failure with an HTTP status and a client-facing message
type Error struct {
	Code    int
	Message string
	Err     error
	// Stack is where Internal was called, empty for expected failures
	Stack []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given status and message
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Internal wraps an unexpected error and records the caller's stack. The
// message is never shown to clients.
func Internal(err error) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
		Stack:   debug.Stack(),
	}
}

// As returns the *Error in err's chain, if any
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given status
func IsCode(err error, code int) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
