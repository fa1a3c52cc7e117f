// Package errors defines the application error taxonomy: every client-visible
// failure carries an HTTP status, a stable numeric business code, and the
// exact message clients match on.
package errors

import (
	"net/http"

	"passport/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int // HTTP status code
	Code() int     // Stable numeric business code consumed by clients
	Msg() string   // Client-facing error message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode int
	code     int
	msg      string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode, code int, msg string) *BaseError {
	return &BaseError{
		httpCode: httpCode,
		code:     code,
		msg:      msg,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.msg
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// Code returns the stable numeric business code
func (e *BaseError) Code() int {
	return e.code
}

// Msg returns the client-facing error message
func (e *BaseError) Msg() string {
	return e.msg
}

// Predefined error types. The numeric codes are a wire contract: clients key
// on them, so they never change meaning between releases.
var (
	// Registration and credential errors
	ErrUserExists = NewBaseError(
		http.StatusBadRequest,
		1001,
		"account name already exists",
	)

	ErrMissingName = NewBaseError(
		http.StatusBadRequest,
		1002,
		"missing name",
	)

	ErrMissingEmail = NewBaseError(
		http.StatusBadRequest,
		1002,
		"missing email",
	)

	ErrIllegalName = NewBaseError(
		http.StatusBadRequest,
		1003,
		"illegal name",
	)

	ErrWrongPassword = NewBaseError(
		http.StatusBadRequest,
		1004,
		"wrong password",
	)

	ErrEmailUsed = NewBaseError(
		http.StatusBadRequest,
		1005,
		"email has been used",
	)

	ErrIllegalEmail = NewBaseError(
		http.StatusBadRequest,
		1006,
		"illegal email",
	)

	ErrInvalidPassword = NewBaseError(
		http.StatusBadRequest,
		1007,
		"invalid password",
	)

	// Update-time password mismatch keeps the login message but carries its
	// own stable code so clients can tell the two flows apart.
	ErrWrongOldPassword = NewBaseError(
		http.StatusBadRequest,
		1008,
		"wrong password",
	)

	ErrMissingAvatar = NewBaseError(
		http.StatusBadRequest,
		1009,
		"missing avatar file",
	)

	// Common errors. Login lookup failures are a client error (400); a
	// mutating reference to an absent account is 404. Same msg and code,
	// different transport status.
	ErrAccountNotFound = NewBaseError(
		http.StatusBadRequest,
		2001,
		"account not found",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		2001,
		"account not found",
	)

	ErrInvalidID = NewBaseError(
		http.StatusBadRequest,
		2002,
		"invalid id",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		2003,
		"unauthorized",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		2004,
		"forbidden",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		2000,
		"internal server error",
	)
)

// StoreError represents an unexpected persistence failure, implementing the
// AppError interface. It is propagated as a generic server error and never
// silently swallowed.
type StoreError struct {
	err     error
	details string
}

// NewStoreError creates a persistence-related error
func NewStoreError(err error, details string) AppError {
	return &StoreError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return errors.Wrap(e.err, "store execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *StoreError) HTTPCode() int {
	return http.StatusInternalServerError
}

// Code returns the stable numeric business code
func (e *StoreError) Code() int {
	return 2000
}

// Msg returns the client-facing error message
func (e *StoreError) Msg() string {
	return "internal server error"
}

// Details returns the internal diagnostic context. Logged, never sent to clients.
func (e *StoreError) Details() string {
	return e.details
}
