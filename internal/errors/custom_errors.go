package errors

import (
	"fmt"
	"net/http"

	"propertyhub-api/internal/models"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
	Fields           []models.FieldError
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Common error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidParameters  = "INVALID_PARAMETERS"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodePropertyNotFound   = "PROPERTY_NOT_FOUND"
	ErrCodeDuplicate          = "DUPLICATE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeUpload             = "UPLOAD_FAILED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationError reports per-field input problems.
func NewValidationError(fields []models.FieldError) *AppError {
	return &AppError{
		TechnicalMessage: fmt.Sprintf("validation failed on %d field(s)", len(fields)),
		UserMessage:      MsgValidationFailed,
		Code:             ErrCodeValidation,
		HTTPStatus:       http.StatusBadRequest,
		Fields:           fields,
	}
}

// NewBadRequest is a 400 carrying a caller-facing message.
func NewBadRequest(code, message string) *AppError {
	return NewAppError(message, message, code, http.StatusBadRequest, nil)
}

func NewUnauthorized(message string) *AppError {
	return NewAppError(message, message, ErrCodeUnauthorized, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) *AppError {
	return NewAppError(message, message, ErrCodeForbidden, http.StatusForbidden, nil)
}

// NewNotFound builds a 404 for the named resource, e.g. "Property".
func NewNotFound(resource string) *AppError {
	message := resource + " not found"
	code := ErrCodeNotFound
	if resource == "Property" {
		code = ErrCodePropertyNotFound
	}
	return NewAppError(message, message, code, http.StatusNotFound, nil)
}

// NewInternal wraps an unexpected failure; the technical message is only logged.
func NewInternal(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
}
