package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/restclient/errors"
)

func TestValidatorRequired(t *testing.T) {
	if New().Required("path", "/items").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("path", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("path", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantErr bool
	}{
		{100, false},
		{200, false},
		{404, false},
		{599, false},
		{0, true},
		{99, true},
		{600, true},
		{-1, true},
	}
	for _, tt := range tests {
		got := New().StatusCode("expected_status", tt.code).HasErrors()
		if got != tt.wantErr {
			t.Errorf("StatusCode(%d): expected error=%v, got %v", tt.code, tt.wantErr, got)
		}
	}
}

func TestValidatorMethod(t *testing.T) {
	if New().Method("method", "GET").HasErrors() {
		t.Error("GET should be valid")
	}
	if New().Method("method", "").HasErrors() {
		t.Error("empty method should be allowed")
	}
	if !New().Method("method", "get").HasErrors() {
		t.Error("methods are case-sensitive")
	}
}

func TestValidatorMediaType(t *testing.T) {
	if New().MediaType("accept", "application/json; charset=utf-8").HasErrors() {
		t.Error("expected valid media type")
	}
	if New().MediaType("accept", "").HasErrors() {
		t.Error("empty media type should be allowed")
	}
	if !New().MediaType("accept", "json").HasErrors() {
		t.Error("expected error for malformed media type")
	}
}

func TestValidatorAbsoluteURL(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"https://api.example.com", false},
		{"http://localhost:8080/v1", false},
		{"/relative", true},
		{"ftp://example.com", true},
		{"https://", true},
	}
	for _, tt := range tests {
		got := New().AbsoluteURL("base_url", tt.value).HasErrors()
		if got != tt.wantErr {
			t.Errorf("AbsoluteURL(%q): expected error=%v, got %v", tt.value, tt.wantErr, got)
		}
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	if New().OptionalUUID("request_id", "").HasErrors() {
		t.Error("expected no error for empty optional UUID")
	}
	if New().OptionalUUID("request_id", uuid.New().String()).HasErrors() {
		t.Error("expected no error for valid UUID")
	}
	if !New().OptionalUUID("request_id", "bad-uuid").HasErrors() {
		t.Error("expected error for invalid UUID")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"text", "json", "list"}
	if New().OneOf("as", "json", allowed).HasErrors() {
		t.Error("expected no error for allowed value")
	}
	v := New().OneOf("as", "csv", allowed)
	if !v.HasErrors() {
		t.Fatal("expected error for disallowed value")
	}
	if !strings.Contains(v.Errors()[0].Message, "text, json, list") {
		t.Errorf("expected allowed values in message, got %q", v.Errors()[0].Message)
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New().Custom(false, "field", "custom error")
	if !v.HasErrors() {
		t.Fatal("expected error")
	}
	if v.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Required("path", "/x").Validate() != nil {
		t.Error("expected nil for valid input")
	}
	if err := New().Required("path", "/x").Error(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}

	appErr := New().Required("path", "").StatusCode("expected_status", 0).Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "path") || !strings.Contains(appErr.Message, "expected_status") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("path", "/x").StatusCode("expected_status", 200).MediaType("accept", "text/plain")
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type clientSettings struct {
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,http_url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Accept  string        `mapstructure:"accept" validate:"omitempty,mediatype"`
}

type settingsFile struct {
	Client clientSettings `mapstructure:"client"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(clientSettings{BaseURL: "https://api.example.com", Timeout: time.Second, Accept: "application/json"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(clientSettings{BaseURL: "not a url", Timeout: 0, Accept: "json"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsInvalidInput(err) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	msg := err.Error()
	for _, field := range []string{"base_url", "timeout", "accept"} {
		if !strings.Contains(msg, field) {
			t.Errorf("expected error to mention %q, got %q", field, msg)
		}
	}
}

func TestStructValidateNestedPath(t *testing.T) {
	err := Validate(settingsFile{Client: clientSettings{Timeout: 0}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "client.timeout") {
		t.Errorf("expected nested field path, got %q", err.Error())
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("BaseURL"); got != "base_u_r_l" {
		t.Errorf("got %q", got)
	}
	if got := toSnakeCase("Timeout"); got != "timeout" {
		t.Errorf("got %q", got)
	}
}
