// Package apperr defines the error kinds every usecase reports. Transport
// layers map a kind to a status code and surface Detail to the caller.
package apperr

import "errors"

var (
	ErrInvalid      = errors.New("invalid")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

type Error struct {
	Kind   error
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return e != nil && target == e.Kind
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

func Wrap(kind error, detail string, cause error) error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

func Internal(cause error) error {
	return &Error{Kind: ErrInternal, Detail: "internal error", Cause: cause}
}

// Detail returns the caller-facing message of err, or "" when err carries none.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
