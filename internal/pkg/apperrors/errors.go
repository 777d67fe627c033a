package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrInvalidRequest   ErrorType = "INVALID_REQUEST"
	ErrStoreWriteFailed ErrorType = "STORE_WRITE_FAILED"
	ErrRateLimited      ErrorType = "RATE_LIMITED"
	ErrInternal         ErrorType = "INTERNAL_ERROR"
)

// AppError is the standard error struct for the application.
// It renders as {"code": ..., "error": ...}.
type AppError struct {
	Type       ErrorType `json:"code"`
	Message    string    `json:"error"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errType ErrorType, msg string, cause error) *AppError {
	return &AppError{
		Type:       errType,
		Message:    msg,
		Cause:      cause,
		HTTPStatus: mapTypeToStatus(errType),
	}
}

func NewInvalidRequest(msg string) *AppError {
	return New(ErrInvalidRequest, msg, nil)
}

// NewStoreWrite reports a failed record operation. The message echoes the
// underlying failure so callers see what went wrong.
func NewStoreWrite(cause error) *AppError {
	msg := "Failed to save"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return New(ErrStoreWriteFailed, msg, cause)
}

// Wrap returns err as an AppError, treating anything unknown as internal.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(ErrInternal, err.Error(), err)
}

func mapTypeToStatus(t ErrorType) int {
	switch t {
	case ErrInvalidRequest, ErrStoreWriteFailed:
		return http.StatusBadRequest
	case ErrRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
