package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON body returned to callers on any failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
// Server-side errors expose the cause text under "message" and keep their
// internal details private.
func (e *AppError) ToResponse() ErrorResponse {
	if IsServerSide(e.Code) {
		resp := ErrorResponse{Error: e.Message}
		if e.Cause != nil {
			resp.Message = e.Cause.Error()
		}
		return resp
	}
	return ErrorResponse{
		Error:   e.Message,
		Details: e.Details,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// From returns err as an *AppError, wrapping anything else as Internal.
func From(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
