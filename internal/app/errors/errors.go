package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies failures that reach the user.
type Kind string

const (
	KindNone            Kind = ""
	KindMissingInput    Kind = "missing_input"
	KindPayloadTooLarge Kind = "payload_too_large"
	KindRequestFailed   Kind = "request_failed"
	KindSuperseded      Kind = "superseded"
)

// UserMessage returns the fixed, user-safe text shown for a kind.
// The underlying cause is never part of it.
func (k Kind) UserMessage() string {
	switch k {
	case KindMissingInput:
		return "Select an audio file and enter your API key first."
	case KindPayloadTooLarge:
		return "The audio file is larger than the 25 MB upload limit."
	case KindRequestFailed:
		return "Error during transcription. Please check your API key and try again."
	case KindSuperseded:
		return "The transcription was replaced by a newer request."
	default:
		return ""
	}
}

// Common error types
var (
	ErrMissingAudio      = NewKind(KindMissingInput, "audio source is required")
	ErrMissingCredential = NewKind(KindMissingInput, "API key is required")
	ErrPayloadTooLarge   = NewKind(KindPayloadTooLarge, "audio payload exceeds upload limit")
	ErrSuperseded        = NewKind(KindSuperseded, "request superseded")

	ErrInvalidConfig   = New("invalid configuration")
	ErrSettingNotFound = New("setting not found")
	ErrMediaNotFound   = New("media not found")
	ErrRequestFailed   = NewKind(KindRequestFailed, "request failed")
	ErrResponseInvalid = NewKind(KindRequestFailed, "invalid response")
)

// Error represents a standardized error
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// NewKind creates a new error of the given kind
func NewKind(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// WrapKind wraps an error and tags it with a kind
func WrapKind(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:    kind,
		message: message,
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message && e.kind == t.kind
}

// Kind returns the error's own kind, falling back to the kind of its cause.
func (e *Error) Kind() Kind {
	if e.kind != KindNone {
		return e.kind
	}
	return KindOf(e.cause)
}

// KindOf walks the chain of err and returns the first kind found.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind()
	}
	return KindNone
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Helper functions for common patterns

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Newf("%s is required", field)
}

// OutOfRange returns an error for values outside acceptable range
func OutOfRange(field string, min, max interface{}) error {
	return Newf("%s out of range (must be between %v and %v)", field, min, max)
}

// NotFound returns an error for items that were not found
func NotFound(itemType string, identifier string) error {
	return Newf("%s not found: %s", itemType, identifier)
}
