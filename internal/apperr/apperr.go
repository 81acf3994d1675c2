// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Auth
	Forbidden
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Auth:
		return "auth"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a Kind for status mapping and a machine-readable Code for clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Invalid(code, message string) *Error { return New(Validation, code, message) }
func Unauthorized(code, message string) *Error { return New(Auth, code, message) }
func Denied(code, message string) *Error { return New(Forbidden, code, message) }
func Missing(code, message string) *Error { return New(NotFound, code, message) }
func Duplicate(code, message string) *Error { return New(Conflict, code, message) }

// KindOf returns the Kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
