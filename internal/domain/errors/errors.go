package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same business code, so copies made by
// WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// Predefined error types
var (
	// Identity
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Sign in to continue",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	// Trips
	ErrTrekNameRequired = NewBaseError(
		http.StatusBadRequest,
		"TREK_NAME_REQUIRED",
		"A trek name is required",
		"",
	)

	ErrDestinationNotFound = NewBaseError(
		http.StatusNotFound,
		"DESTINATION_NOT_FOUND",
		"Destination not found",
		"",
	)

	// Chat
	ErrConversationUnavailable = NewBaseError(
		http.StatusBadRequest,
		"CONVERSATION_UNAVAILABLE",
		"No conversation is possible with this user",
		"",
	)

	ErrEmptyMessage = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_MESSAGE",
		"Message text is empty",
		"",
	)

	// Devices
	ErrFCMTokenRequired = NewBaseError(
		http.StatusBadRequest,
		"FCM_TOKEN_REQUIRED",
		"An FCM token is required",
		"",
	)

	// Streams
	ErrReadModelUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"READ_MODEL_UNAVAILABLE",
		"Live data is not available right now",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// ErrPartialWrite is matched by every PartialWriteError through errors.Is.
var ErrPartialWrite = errors.New("partial write")

// PartialWriteError reports a multi-document write where the first document
// was stored and a later one was not.
type PartialWriteError struct {
	Collection string // Collection of the document that was written first.
	DocumentID string // ID of the document that was written first.
	RolledBack bool   // Whether the compensating delete succeeded.
	Cause      error  // The failure of the later write.
	Rollback   error  // The failure of the compensating delete, if any.
}

func (e *PartialWriteError) Error() string {
	if e.RolledBack {
		return errors.Wrapf(e.Cause, "partial write rolled back (%s/%s)", e.Collection, e.DocumentID).Error()
	}

	return errors.Wrapf(e.Cause, "partial write left %s/%s behind", e.Collection, e.DocumentID).Error()
}

func (e *PartialWriteError) Unwrap() error {
	return e.Cause
}

func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}

func (e *PartialWriteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *PartialWriteError) ErrorCode() string {
	return "PARTIAL_WRITE"
}

func (e *PartialWriteError) Message() string {
	if e.RolledBack {
		return "Trek could not be planned, no changes were kept"
	}

	return "Trek was only partially saved"
}

func (e *PartialWriteError) Details() string {
	if e.Rollback != nil {
		return "rollback failed: " + e.Rollback.Error()
	}

	return e.Cause.Error()
}
