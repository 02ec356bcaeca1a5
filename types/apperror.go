package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError for the request boundary.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindUpstream     ErrorKind = "upstream"
	KindStore        ErrorKind = "store"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Details interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError of the same kind and message, so package level
// sentinels work with errors.Is even after being wrapped with a cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Wrap returns a copy of e carrying err as its cause.
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{Kind: e.Kind, Message: e.Message, Details: e.Details, Err: err}
}

func NewAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string, details interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: err}
}

func NewStoreError(err error) *AppError {
	return &AppError{Kind: KindStore, Message: ErrDatabaseError, Err: err}
}

// GetAppError unwraps err to the first AppError in its chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// KindOf reports the kind of err, treating unknown errors as store failures.
func KindOf(err error) ErrorKind {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind
	}
	return KindStore
}
