package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	apperrors "whisper-sync/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
	KindPayloadTooLarge    ErrorKind = "payload_too_large"
	KindUpstream           ErrorKind = "upstream"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUpstream:
		return http.StatusBadGateway
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewPayloadTooLargeError creates a payload too large error
func NewPayloadTooLargeError(message string) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: message,
	}
}

// FromAppError maps an application error to its API form. The message is
// always the user-safe text for the error's kind, never the cause. It returns
// nil for errors with no client-facing meaning, which callers treat as internal.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	kind := apperrors.KindOf(err)
	switch kind {
	case apperrors.KindMissingInput:
		return &APIError{Kind: KindValidation, Code: string(kind), Message: kind.UserMessage()}
	case apperrors.KindPayloadTooLarge:
		return &APIError{Kind: KindPayloadTooLarge, Code: string(kind), Message: kind.UserMessage()}
	case apperrors.KindRequestFailed:
		return &APIError{Kind: KindUpstream, Code: string(kind), Message: kind.UserMessage()}
	case apperrors.KindSuperseded:
		return &APIError{Kind: KindConflict, Code: string(kind), Message: kind.UserMessage()}
	}

	if stderrors.Is(err, apperrors.ErrMediaNotFound) {
		return NewNotFoundError("Media")
	}
	return nil
}
