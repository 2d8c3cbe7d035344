// Package apperror defines the application error taxonomy. Every failure a
// handler can surface to a client is one of these kinds; the HTTP layer maps
// kinds to status codes in exactly one place.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindUnavailable
	KindInvalidState
	KindAuthorization
	KindDependency
)

// Error carries a kind for dispatch, a stable machine-readable code, and a
// human-readable message. It wraps an underlying cause when there is one.
type Error struct {
	kind Kind
	code string
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }
func (e *Error) Code() string  { return e.code }
func (e *Error) Message() string {
	return e.msg
}

func newf(kind Kind, code, format string, args ...any) *Error {
	return &Error{kind: kind, code: code, msg: fmt.Sprintf(format, args...)}
}

func Validationf(code, format string, args ...any) *Error {
	return newf(KindValidation, code, format, args...)
}

func NotFoundf(code, format string, args ...any) *Error {
	return newf(KindNotFound, code, format, args...)
}

func Unavailablef(code, format string, args ...any) *Error {
	return newf(KindUnavailable, code, format, args...)
}

func InvalidStatef(code, format string, args ...any) *Error {
	return newf(KindInvalidState, code, format, args...)
}

func Authorizationf(code, format string, args ...any) *Error {
	return newf(KindAuthorization, code, format, args...)
}

// Dependency marks an unexpected failure in a collaborator (store, gateway).
func Dependency(code string, err error) *Error {
	return &Error{kind: KindDependency, code: code, msg: "dependency failure", err: err}
}

// KindOf extracts the kind from an error chain; KindUnknown if none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindUnknown
}

// As returns the *Error in the chain, or nil.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
