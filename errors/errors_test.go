package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeConversion, "bad body", http.StatusOK)
	if err.Code != ErrCodeConversion {
		t.Errorf("expected code %s, got %s", ErrCodeConversion, err.Code)
	}
	if err.Message != "bad body" {
		t.Errorf("expected message 'bad body', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("CONVERSION_FAILED should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", 0)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := New(ErrCodeConfiguration, "no rule", 0)
	if got := err.Error(); got != "CONFIGURATION: no rule" {
		t.Errorf("unexpected message %q", got)
	}

	err = err.WithCause(fmt.Errorf("boom"))
	if got := err.Error(); !strings.Contains(got, "(cause: boom)") {
		t.Errorf("expected cause in message, got %q", got)
	}
}

func TestStatusMismatch(t *testing.T) {
	err := StatusMismatch(http.StatusBadRequest, "successful")
	if err.Code != ErrCodeStatusMismatch {
		t.Errorf("expected STATUS_MISMATCH, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if !strings.Contains(err.Message, "400") || !strings.Contains(err.Message, "successful") {
		t.Errorf("message should name the policy and the status, got %q", err.Message)
	}
	if err.Retryable {
		t.Error("400 should not be retryable")
	}
	if !IsStatusMismatch(err) {
		t.Error("expected IsStatusMismatch to be true")
	}
	if got, ok := ActualStatus(err); !ok || got != http.StatusBadRequest {
		t.Errorf("expected actual status 400, got %d (ok=%v)", got, ok)
	}
	if _, ok := ExpectedStatus(err); ok {
		t.Error("predicate mismatch should not carry an expected status")
	}
}

func TestUnexpectedStatus(t *testing.T) {
	err := UnexpectedStatus(http.StatusCreated, http.StatusOK)
	want := "unexpected HTTP status: expected = 201, actual = 200"
	if err.Message != want {
		t.Errorf("expected %q, got %q", want, err.Message)
	}
	if got, ok := ExpectedStatus(err); !ok || got != http.StatusCreated {
		t.Errorf("expected 201, got %d (ok=%v)", got, ok)
	}
	if got, ok := ActualStatus(err); !ok || got != http.StatusOK {
		t.Errorf("expected 200, got %d (ok=%v)", got, ok)
	}
}

func TestStatusMismatch_Retryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			if got := StatusMismatch(tt.status, "successful").Retryable; got != tt.retryable {
				t.Errorf("expected retryable=%v, got %v", tt.retryable, got)
			}
		})
	}
}

func TestConversionFailed(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := ConversionFailed("map[string]interface {}", cause)
	if !IsConversion(err) {
		t.Error("expected IsConversion to be true")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if got, ok := TargetType(err); !ok || got != "map[string]interface {}" {
		t.Errorf("unexpected target type %q (ok=%v)", got, ok)
	}
	if !strings.Contains(err.Message, "map[string]interface {}") {
		t.Errorf("message should name the target type, got %q", err.Message)
	}
}

func TestNoMatchingRule(t *testing.T) {
	err := NoMatchingRule("application/x-unknown")
	if !IsConfiguration(err) {
		t.Error("expected IsConfiguration to be true")
	}
	if err.Details[DetailContentType] != "application/x-unknown" {
		t.Errorf("expected content type detail, got %v", err.Details[DetailContentType])
	}
}

func TestTransportErrors(t *testing.T) {
	conn := ConnectionFailed(fmt.Errorf("connection refused"))
	timeout := Timeout(fmt.Errorf("deadline exceeded"))

	for _, err := range []*AppError{conn, timeout} {
		if !IsTransport(err) {
			t.Errorf("expected %s to be a transport error", err.Code)
		}
		if !IsRetryable(err) {
			t.Errorf("expected %s to be retryable", err.Code)
		}
		if IsStatusMismatch(err) || IsConversion(err) || IsConfiguration(err) {
			t.Errorf("%s matched another error kind", err.Code)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("base_url", "must be absolute")
	if !IsInvalidInput(err) {
		t.Error("expected IsInvalidInput to be true")
	}
	if err.Details["field"] != "base_url" {
		t.Errorf("expected field=base_url, got %v", err.Details["field"])
	}
	if Validation("bad").Code != ErrCodeInvalidInput {
		t.Error("Validation should use INVALID_INPUT")
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("get /items: %w", UnexpectedStatus(200, 404))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.HTTPStatus != 404 {
		t.Errorf("expected 404, got %d", appErr.HTTPStatus)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to be true")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("plain errors are not AppErrors")
	}
	if _, ok := ActualStatus(fmt.Errorf("plain")); ok {
		t.Error("plain errors carry no status")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(ErrCodeConversion, "x", 0).
		WithDetail(DetailEntityKind, "xml").
		WithDetails(map[string]any{DetailContentType: "text/xml"})
	if err.Details[DetailEntityKind] != "xml" || err.Details[DetailContentType] != "text/xml" {
		t.Errorf("unexpected details %v", err.Details)
	}
}
