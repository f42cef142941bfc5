package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Client input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodePayloadTooLarge indicates the request body exceeds the upload cap.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// Server-side errors
const (
	// ErrCodeConfiguration indicates the service is missing required configuration.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Upstream errors
const (
	// ErrCodeUpstream indicates the external API answered with a failure status.
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrCodeConnectionFailed indicates the external API could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the external call timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// IsServerSide reports whether the code describes a failure on our side of
// the proxy rather than bad caller input or an upstream answer.
func IsServerSide(code ErrorCode) bool {
	switch code {
	case ErrCodeConfiguration, ErrCodeInternal, ErrCodeConnectionFailed, ErrCodeTimeout:
		return true
	}
	return false
}
