package domain

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error class.
type Code string

const (
	CodeValidation      Code = "VALIDATION"
	CodeConflict        Code = "CONFLICT"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

// HTTPStatus maps the code to the response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeConflict:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the typed error surfaced by services. Message is safe to show to
// clients; Cause is only logged.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrValidation      = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrConflict        = &Error{Code: CodeConflict, Message: "conflict"}
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated, Message: "not authorized"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
)

func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func WrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Validation(message string) *Error {
	return NewError(CodeValidation, message)
}

func Conflict(message string) *Error {
	return NewError(CodeConflict, message)
}

func Unauthenticated(message string) *Error {
	return NewError(CodeUnauthenticated, message)
}

func NotFound(message string) *Error {
	return NewError(CodeNotFound, message)
}

// CodeOf returns the code carried by err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
