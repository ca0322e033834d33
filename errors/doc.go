// Package errors defines the error kinds surfaced by the REST client.
//
// Every failure is an *AppError carrying a machine-readable ErrorCode, so a
// caller can tell the kinds apart and decide what to retry:
//
//   - STATUS_MISMATCH: the status policy rejected the response code
//   - CONVERSION_FAILED: the entity could not be decoded into the requested type
//   - CONFIGURATION: the entity registry has no rule for a content type
//   - CONNECTION_FAILED / TIMEOUT: the transport failed
//   - INVALID_INPUT: the request or client configuration is invalid
//
// Use the Is* predicates rather than comparing codes directly:
//
//	if errors.IsStatusMismatch(err) {
//	    actual, _ := errors.ActualStatus(err)
//	    ...
//	}
package errors
