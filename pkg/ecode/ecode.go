// Package ecode defines standardized business error codes and the typed
// error value the service layer raises. Codes follow a numbering scheme of
// negative bands: -1xx authentication, -4xx request/resource, -5xx server.
package ecode

import (
	"errors"
	"fmt"
)

const (
	OK               = 0
	Unauthorized     = -101
	RequestErr       = -400
	AccessDenied     = -403
	NothingFound     = -404
	Conflict         = -409
	ServerErr        = -500
	MethodNotAllowed = -405
)

var messages = map[int]string{
	OK:               "success",
	Unauthorized:     "not authorized",
	RequestErr:       "invalid request",
	AccessDenied:     "access denied",
	NothingFound:     "resource not found",
	Conflict:         "resource conflict",
	ServerErr:        "internal server error",
	MethodNotAllowed: "method not allowed",
}

// Text returns the default human-readable message for a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// Error is the typed error raised by repositories and services. The code
// selects the HTTP mapping at the pipeline boundary; Message is always safe
// to show to a client.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with an explicit code.
func New(code int, message string) *Error {
	if message == "" {
		message = Text(code)
	}
	return &Error{Code: code, Message: message}
}

// Validation reports a missing or malformed field, or a bad enum value.
func Validation(message string) *Error {
	return New(RequestErr, message)
}

// AuthFailed reports a missing, invalid, or expired credential, or a failed
// login. Callers get the same message for wrong email and wrong password.
func AuthFailed(message string) *Error {
	return New(Unauthorized, message)
}

// Forbidden reports that the caller is authenticated but the operation is
// not permitted on the resource.
func Forbidden(message string) *Error {
	return New(AccessDenied, message)
}

// NotFound reports an unknown identifier, or an existing identifier whose
// parent is gone.
func NotFound(message string) *Error {
	return New(NothingFound, message)
}

// Conflicted reports a uniqueness violation such as a duplicate email.
func Conflicted(message string) *Error {
	return New(Conflict, message)
}

// Internal wraps an unexpected failure. The cause is kept for logging and
// debug output but never reaches production responses.
func Internal(message string, err error) *Error {
	e := New(ServerErr, message)
	e.Err = err
	return e
}

// From extracts the typed error, or wraps err as internal when it is not one.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(Text(ServerErr), err)
}

// CodeOf returns the business code of err, or ServerErr for untyped errors.
func CodeOf(err error) int {
	return From(err).Code
}
