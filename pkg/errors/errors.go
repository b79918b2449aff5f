package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of application errors
type ErrorType string

const (
	ErrorTypeTimeout             ErrorType = "timeout"
	ErrorTypeHTTP                ErrorType = "http_error"
	ErrorTypeMalformedResponse   ErrorType = "malformed_response"
	ErrorTypeFallbackUnavailable ErrorType = "fallback_unavailable"
	ErrorTypeStorage             ErrorType = "storage"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeInternal            ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type           ErrorType              `json:"type"`
	Message        string                 `json:"message"`
	StatusCode     int                    `json:"status_code"`
	UpstreamStatus int                    `json:"upstream_status,omitempty"`
	Internal       error                  `json:"-"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewTimeoutError creates an error for an upstream fetch that exceeded its deadline
func NewTimeoutError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Internal:   internal,
	}
}

// NewHTTPError creates an error for a non-success status from the upstream API
func NewHTTPError(message string, upstreamStatus int) *AppError {
	return &AppError{
		Type:           ErrorTypeHTTP,
		Message:        message,
		StatusCode:     http.StatusBadGateway,
		UpstreamStatus: upstreamStatus,
	}
}

// NewMalformedResponseError creates an error for an upstream body that does not
// match the expected envelope
func NewMalformedResponseError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedResponse,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// NewFallbackUnavailableError creates an error for a missing or unusable
// static fallback document
func NewFallbackUnavailableError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeFallbackUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Internal:   internal,
	}
}

// NewStorageError creates an error for cache serialization or storage failures
func NewStorageError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsTimeout reports whether err represents an exceeded upstream deadline
func IsTimeout(err error) bool {
	return IsType(err, ErrorTypeTimeout)
}

// ErrorResponse represents the JSON error response
type ErrorResponse struct {
	Error struct {
		Type      ErrorType              `json:"type"`
		Message   string                 `json:"message"`
		Details   map[string]interface{} `json:"details,omitempty"`
		RequestID string                 `json:"request_id,omitempty"`
		Timestamp string                 `json:"timestamp"`
	} `json:"error"`
}
