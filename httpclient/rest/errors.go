package rest

import (
	"net/http"

	"github.com/kbukum/restclient/errors"
)

// Error helpers delegate to the errors package so callers of rest do not
// need a second import for error checks.

// IsStatusMismatch checks if the status policy rejected the response.
func IsStatusMismatch(err error) bool { return errors.IsStatusMismatch(err) }

// IsConversion checks if the body could not be converted to the requested type.
func IsConversion(err error) bool { return errors.IsConversion(err) }

// IsConfiguration checks if the registry had no rule for the content type.
func IsConfiguration(err error) bool { return errors.IsConfiguration(err) }

// IsTransport checks if the exchange itself failed.
func IsTransport(err error) bool { return errors.IsTransport(err) }

// IsTimeout checks if the exchange timed out or was cancelled.
func IsTimeout(err error) bool { return errors.HasCode(err, errors.ErrCodeTimeout) }

// IsRetryable checks if the error can be retried.
func IsRetryable(err error) bool { return errors.IsRetryable(err) }

// IsNotFound checks if the status policy rejected a 404.
func IsNotFound(err error) bool { return rejected(err, func(code int) bool { return code == http.StatusNotFound }) }

// IsServerError checks if the status policy rejected a 5xx.
func IsServerError(err error) bool { return rejected(err, func(code int) bool { return code >= 500 }) }

func rejected(err error, match func(int) bool) bool {
	if !errors.IsStatusMismatch(err) {
		return false
	}
	code, ok := errors.ActualStatus(err)
	return ok && match(code)
}
