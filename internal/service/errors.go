package service

import (
	"errors"

	"gorm.io/gorm"
)

// Error kinds. Every error returned by a service matches exactly one of them
// with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Error carries a kind, the message shown to the caller and an optional cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool { return e.Kind == target }
func (e *Error) Unwrap() error        { return e.Cause }

func notFound(msg string) error       { return &Error{Kind: ErrNotFound, Message: msg} }
func conflict(msg string) error       { return &Error{Kind: ErrConflict, Message: msg} }
func invalidRequest(msg string) error { return &Error{Kind: ErrInvalidRequest, Message: msg} }
func forbidden(msg string) error      { return &Error{Kind: ErrForbidden, Message: msg} }
func unauthorized(msg string) error   { return &Error{Kind: ErrUnauthorized, Message: msg} }

func unavailable(msg string, cause error) error {
	return &Error{Kind: ErrServiceUnavailable, Message: msg, Cause: cause}
}

// lookupError maps a repository lookup failure: a missing row becomes
// NotFound with msg, anything else is a persistence failure.
func lookupError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(msg)
	}
	return unavailable("database unavailable", err)
}

// ErrorKind maps an error to a stable logging label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrServiceUnavailable):
		return "service_unavailable"
	}
	return "unexpected"
}
