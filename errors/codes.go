package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Response errors
const (
	// ErrCodeStatusMismatch indicates the status policy rejected the response code.
	ErrCodeStatusMismatch ErrorCode = "STATUS_MISMATCH"
	// ErrCodeConversion indicates the response entity could not be converted to the requested type.
	ErrCodeConversion ErrorCode = "CONVERSION_FAILED"
)

// Client setup errors
const (
	// ErrCodeConfiguration indicates an entity registry that cannot resolve a content type.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeInvalidInput indicates an invalid request or client configuration.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Transport errors (retryable)
const (
	// ErrCodeConnectionFailed indicates a failed connection or a failed body read.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out or its context was cancelled.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Detail keys attached to errors.
const (
	DetailActualStatus   = "actual_status"
	DetailExpectedStatus = "expected_status"
	DetailTargetType     = "target_type"
	DetailContentType    = "content_type"
	DetailEntityKind     = "entity_kind"
	DetailPolicy         = "policy"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeConversion:       false,
	ErrCodeConfiguration:    false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// IsRetryableStatus reports whether a rejected HTTP status is worth retrying:
// 408, 429 and every 5xx.
func IsRetryableStatus(status int) bool {
	return status == 408 || status == 429 || status >= 500
}
