package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Sessions
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid session token")
	ErrTokenExpired         = errors.New("session expired")
	ErrTokenRevoked         = errors.New("session revoked")

	// Auth
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrForbidden          = errors.New("Forbidden")
	ErrAccountLocked      = errors.New("Too many failed sign-in attempts, try again later")

	// Context
	ErrUserNotFoundInContext = errors.New("user not found in request context")

	// Common
	ErrNotFound   = errors.New("Not found")
	ErrBadRequest = errors.New("Bad request")
	ErrConflict   = errors.New("Conflict")
)

// HttpError carries the status code and the message shown to the caller.
// Err keeps the underlying cause for logs only.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, nil)
}

func NewUnauthorizedError(message string) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message, ErrUnauthorized, nil)
}

func NewForbiddenError(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, ErrForbidden, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

func NewConflictError(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message, ErrConflict, nil)
}

func NewInternalError(message string) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message, nil, nil)
}
