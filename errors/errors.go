package errors

import (
	"fmt"
	"net/http"

	"github.com/kbukum/scribeproxy/util"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the caller-facing error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code this error is reported with.
	HTTPStatus int `json:"-"`
	// Details is arbitrary JSON-compatible context (for upstream errors, the
	// upstream detail object or the whole parsed body).
	Details any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails replaces the error details and returns the receiver.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// Validation creates a new AppError for rejected client input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates a new AppError for a missing required field.
// The message is used verbatim so callers control the wording.
func MissingField(message string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// PayloadTooLarge creates a new AppError for a request body over the cap.
func PayloadTooLarge(limitBytes int64) *AppError {
	return &AppError{
		Code:       ErrCodePayloadTooLarge,
		Message:    "File too large: maximum upload size is " + util.FormatSize(limitBytes),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// Configuration creates a new AppError for missing or invalid server configuration.
func Configuration(message string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Upstream creates a new AppError relaying a failed upstream response.
// The status is the upstream status code, passed through unchanged.
func Upstream(status int, message string, details any) *AppError {
	return &AppError{
		Code: ErrCodeUpstream, Message: message,
		HTTPStatus: status, Details: details,
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a service.
func ConnectionFailed(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: "Internal server error",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
		Details: map[string]any{"service": service},
	}
}

// Timeout creates a new AppError for an outbound call that timed out.
func Timeout(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "Internal server error",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
		Details: map[string]any{"service": service},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "Internal server error",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
