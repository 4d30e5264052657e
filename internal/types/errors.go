package types

import (
	"errors"
	"net/http"
)

// Error codes returned in API error responses
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeUpstreamError      = "UPSTREAM_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError carries an HTTP status and a stable code alongside the cause
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError creates a new AppError
func NewError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

func NewInvalidRequest(message string, err error) *AppError {
	return NewError(ErrCodeInvalidRequest, message, http.StatusBadRequest, err)
}

func NewNotFound(message string) *AppError {
	return NewError(ErrCodeNotFound, message, http.StatusNotFound, nil)
}

func NewUpstream(message string, err error) *AppError {
	return NewError(ErrCodeUpstreamError, message, http.StatusBadGateway, err)
}

func NewUnavailable(message string, err error) *AppError {
	return NewError(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable, err)
}

func NewInternal(err error) *AppError {
	return NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, err)
}

// AsAppError returns err as an AppError, wrapping unknown errors as internal
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}
