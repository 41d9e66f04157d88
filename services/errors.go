package services

import (
	"github.com/pkg/errors"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// AppError is a failure the caller caused and may be shown verbatim.
// Anything that is not an AppError is an internal error.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  FieldErrors
}

func (e *AppError) Error() string {
	return e.Message
}

// FieldErrors maps a request field to every problem found with it.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &AppError{Kind: KindValidation, Message: "Validation failed", Fields: f}
}

func BadRequest(message string) error {
	return &AppError{Kind: KindBadRequest, Message: message}
}

func Unauthorized(message string) error {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &AppError{Kind: KindConflict, Message: message}
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
