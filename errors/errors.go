package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified client error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status code of the response that caused the error, if any.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
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

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors ---

// StatusMismatch creates an error for a status code rejected by a predicate policy.
func StatusMismatch(actual int, policy string) *AppError {
	return &AppError{
		Code:       ErrCodeStatusMismatch,
		Message:    fmt.Sprintf("expected %s HTTP status, but received %d", policy, actual),
		HTTPStatus: actual,
		Retryable:  IsRetryableStatus(actual),
		Details: map[string]any{
			DetailActualStatus: actual,
			DetailPolicy:       policy,
		},
	}
}

// UnexpectedStatus creates an error for a status code that differs from the single expected code.
func UnexpectedStatus(expected, actual int) *AppError {
	return &AppError{
		Code:       ErrCodeStatusMismatch,
		Message:    fmt.Sprintf("unexpected HTTP status: expected = %d, actual = %d", expected, actual),
		HTTPStatus: actual,
		Retryable:  IsRetryableStatus(actual),
		Details: map[string]any{
			DetailActualStatus:   actual,
			DetailExpectedStatus: expected,
		},
	}
}

// ConversionFailed creates an error for an entity that could not be converted to targetType.
func ConversionFailed(targetType string, cause error) *AppError {
	return &AppError{
		Code:      ErrCodeConversion,
		Message:   fmt.Sprintf("failed to convert the entity to the requested type [%s]", targetType),
		Retryable: false,
		Details:   map[string]any{DetailTargetType: targetType},
		Cause:     cause,
	}
}

// NoMatchingRule creates an error for a registry that has no rule for contentType.
func NoMatchingRule(contentType string) *AppError {
	return &AppError{
		Code:      ErrCodeConfiguration,
		Message:   fmt.Sprintf("no entity rule matches content type %q and no catch-all rule is registered", contentType),
		Retryable: false,
		Details:   map[string]any{DetailContentType: contentType},
	}
}

// ConnectionFailed creates an error for a failed connection or body read.
func ConnectionFailed(cause error) *AppError {
	return &AppError{
		Code:      ErrCodeConnectionFailed,
		Message:   "unable to complete the HTTP exchange",
		Retryable: true,
		Cause:     cause,
	}
}

// Timeout creates an error for a request that timed out or was cancelled.
func Timeout(cause error) *AppError {
	return &AppError{
		Code:      ErrCodeTimeout,
		Message:   "the request took too long",
		Retryable: true,
		Cause:     cause,
	}
}

// InvalidInput creates an error for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates an error for validation failures.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message, Retryable: false}
}

// --- Inspection ---

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

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsStatusMismatch reports whether err is a status policy rejection.
func IsStatusMismatch(err error) bool { return HasCode(err, ErrCodeStatusMismatch) }

// IsConversion reports whether err is an entity conversion failure.
func IsConversion(err error) bool { return HasCode(err, ErrCodeConversion) }

// IsConfiguration reports whether err is a registry configuration fault.
func IsConfiguration(err error) bool { return HasCode(err, ErrCodeConfiguration) }

// IsInvalidInput reports whether err is an invalid input error.
func IsInvalidInput(err error) bool { return HasCode(err, ErrCodeInvalidInput) }

// IsTransport reports whether err is a connection, body read or timeout failure.
func IsTransport(err error) bool {
	return HasCode(err, ErrCodeConnectionFailed) || HasCode(err, ErrCodeTimeout)
}

// IsRetryable reports whether err is an AppError marked retryable.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}

// ActualStatus returns the rejected status code carried by a status mismatch.
func ActualStatus(err error) (int, bool) {
	return intDetail(err, DetailActualStatus)
}

// ExpectedStatus returns the expected status code carried by an exact-match status mismatch.
func ExpectedStatus(err error) (int, bool) {
	return intDetail(err, DetailExpectedStatus)
}

// TargetType returns the requested type carried by a conversion failure.
func TargetType(err error) (string, bool) {
	appErr, ok := AsAppError(err)
	if !ok {
		return "", false
	}
	s, ok := appErr.Details[DetailTargetType].(string)
	return s, ok
}

func intDetail(err error, key string) (int, bool) {
	appErr, ok := AsAppError(err)
	if !ok {
		return 0, false
	}
	v, ok := appErr.Details[key].(int)
	return v, ok
}
