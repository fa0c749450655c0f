package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrApplicationNotFound = NewError(ErrCodeNotFound, "Application not found")
	ErrUserNotFound        = NewError(ErrCodeNotFound, "user not found")
	ErrSessionNotFound     = NewError(ErrCodeNotFound, "session not found")
	ErrDuplicateAadhaar    = NewError(ErrCodeConflict, "Application with this Aadhaar already exists")
	ErrInvalidCredentials  = NewError(ErrCodeUnauthorized, "invalid credentials")
	ErrUnauthorized        = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrModelUnavailable    = NewError(ErrCodeUnavailable, "fraud model not loaded")
	ErrInvalidPayload      = NewError(ErrCodeInvalid, "invalid payload")
)

// NewValidationError reports the exact set of missing form fields.
func NewValidationError(missing []string) *Error {
	return NewError(ErrCodeInvalid, "Missing required fields: "+strings.Join(missing, ", "))
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
