package httpclient

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/restclient/errors"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Name != "http" {
		t.Errorf("expected default name 'http', got %q", cfg.Name)
	}
	if !strings.HasPrefix(cfg.UserAgent, "restclient/") {
		t.Errorf("expected restclient user agent, got %q", cfg.UserAgent)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Name: "catalog", Timeout: 10 * time.Second, UserAgent: "custom/1.0"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.Name != "catalog" || cfg.UserAgent != "custom/1.0" {
		t.Errorf("defaults overwrote existing values: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Timeout: 10 * time.Second, BaseURL: "https://api.example.com"}, false},
		{"no base url", Config{Timeout: time.Second}, false},
		{"negative timeout", Config{Timeout: -1}, true},
		{"zero timeout", Config{}, true},
		{"bad base url", Config{Timeout: time.Second, BaseURL: "api.example.com"}, true},
		{"unknown auth type", Config{Timeout: time.Second, Auth: &AuthConfig{Type: "digest"}}, true},
		{"bearer without token", Config{Timeout: time.Second, Auth: BearerAuth("")}, true},
		{"bearer", Config{Timeout: time.Second, Auth: BearerAuth("t")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.IsInvalidInput(err) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestConfig_ResolveURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://api.example.com", "/users", "https://api.example.com/users"},
		{"https://api.example.com/", "users", "https://api.example.com/users"},
		{"https://api.example.com/v1/", "/users", "https://api.example.com/v1/users"},
		{"https://api.example.com", "", "https://api.example.com"},
		{"https://api.example.com", "http://other.example.com/x", "http://other.example.com/x"},
		{"", "https://other.example.com/x", "https://other.example.com/x"},
	}
	for _, tt := range tests {
		cfg := Config{BaseURL: tt.base}
		if got := cfg.resolveURL(tt.path); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestConfig_HeadersFor(t *testing.T) {
	cfg := Config{
		UserAgent: "ua/1",
		Headers:   map[string]string{"Accept": "application/json", "X-Team": "core"},
	}
	h := cfg.headersFor(Request{Headers: map[string]string{"Accept": "text/plain"}})

	if h["Accept"] != "text/plain" {
		t.Errorf("request header should win, got %q", h["Accept"])
	}
	if h["X-Team"] != "core" {
		t.Errorf("expected default header, got %q", h["X-Team"])
	}
	if h["User-Agent"] != "ua/1" {
		t.Errorf("expected user agent, got %q", h["User-Agent"])
	}
}
