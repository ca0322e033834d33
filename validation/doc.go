// Package validation checks client configuration and request inputs before
// anything goes on the wire.
//
// Struct tag validation covers configuration types loaded from files:
//
//	type Config struct {
//	    BaseURL string        `mapstructure:"base_url" validate:"omitempty,http_url"`
//	    Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic validation covers per-call inputs:
//
//	err := validation.New().
//	    Required("path", path).
//	    StatusCode("expected_status", code).
//	    Error()
//
// Both return an *errors.AppError with code INVALID_INPUT whose details list
// every failing field.
package validation
