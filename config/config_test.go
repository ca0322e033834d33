package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/restclient/errors"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{}
	cfg.ApplyDefaults()

	if cfg.Name != "restclient" {
		t.Errorf("expected name 'restclient', got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Version == "" {
		t.Error("expected version to be set")
	}
	if cfg.Client.Name != "restclient" {
		t.Errorf("expected client name to follow service name, got %q", cfg.Client.Name)
	}
	if cfg.Client.Timeout != 30*time.Second {
		t.Errorf("expected client timeout default, got %v", cfg.Client.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info logging, got %q", cfg.Logging.Level)
	}
	if cfg.Tracing.ServiceName != "restclient" || cfg.Tracing.Environment != "development" {
		t.Errorf("unexpected tracing defaults %+v", cfg.Tracing)
	}
	if cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("expected metrics interval default, got %v", cfg.Metrics.Interval)
	}
}

func TestServiceConfigApplyDefaults_Debug(t *testing.T) {
	cfg := ServiceConfig{Name: "svc", Debug: true}
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug logging, got %q", cfg.Logging.Level)
	}

	cfg = ServiceConfig{Name: "svc", Debug: true}
	cfg.Logging.Level = "warn"
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "warn" {
		t.Errorf("explicit level should win, got %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "environment"},
		{"invalid base url", func(c *ServiceConfig) { c.Client.BaseURL = "not-a-url" }, "client.base_url"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "logging.level"},
		{"invalid sample rate", func(c *ServiceConfig) { c.Tracing.SampleRate = 2 }, "tracing.sample_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ServiceConfig{Name: "svc"}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsInvalidInput(err) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: catalog-cli
environment: staging
logging:
  level: debug
  format: json
client:
  base_url: https://api.example.com
  timeout: 5s
  headers:
    Accept: application/json
  auth:
    type: bearer
    token: secret
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg ServiceConfig
	if err := LoadConfig("catalog-cli", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "catalog-cli" {
		t.Errorf("expected name 'catalog-cli', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Client.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected base url %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Client.Timeout)
	}
	if cfg.Client.Auth == nil || cfg.Client.Auth.Token != "secret" {
		t.Errorf("expected bearer auth, got %v", cfg.Client.Auth)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("client:\n  base_url: https://file.example.com\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("RESTCLIENT_CLIENT_BASE_URL", "https://env.example.com")
	t.Setenv("RESTCLIENT_LOGGING_LEVEL", "warn")

	var cfg ServiceConfig
	if err := LoadConfig("restclient", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Client.BaseURL != "https://env.example.com" {
		t.Errorf("expected env override, got %q", cfg.Client.BaseURL)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env override, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("RESTCLIENT_ENVIRONMENT=production\n"), 0o644); err != nil {
		t.Fatalf("failed to write env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("RESTCLIENT_ENVIRONMENT") })

	var cfg ServiceConfig
	err := LoadConfig("restclient", &cfg,
		WithFileSystem(&mockFS{files: map[string]bool{envPath: true}, real: true}),
		WithEnvFile(envPath),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment from .env, got %q", cfg.Environment)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	var cfg ServiceConfig
	err := LoadConfig("restclient", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoadConfigNoFiles(t *testing.T) {
	var cfg ServiceConfig
	err := LoadConfig("restclient", &cfg, WithFileSystem(&mockFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed without files, got %v", err)
	}
}

func TestResolverSearchOrder(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]bool
		want  ResolvedFiles
	}{
		{
			"named file wins",
			map[string]bool{"./restclient.yml": true, "./config.yml": true, ".env": true},
			ResolvedFiles{ConfigFile: "./restclient.yml", EnvFile: ".env"},
		},
		{
			"config directory",
			map[string]bool{"./config/config.yml": true, ".env.restclient": true, ".env": true},
			ResolvedFiles{ConfigFile: "./config/config.yml", EnvFile: ".env.restclient"},
		},
		{
			"user config dir",
			map[string]bool{filepath.Join("/home/u/.config", "restclient", "config.yml"): true},
			ResolvedFiles{ConfigFile: filepath.Join("/home/u/.config", "restclient", "config.yml")},
		},
		{
			"nothing found",
			map[string]bool{},
			ResolvedFiles{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &Resolver{FileSystem: &mockFS{files: tc.files}}
			if got := resolver.ResolveFiles("restclient", LoaderConfig{}); got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./config.yml": true}}}
	got := resolver.ResolveFiles("restclient", LoaderConfig{ConfigFile: "/etc/rc.yml", EnvFile: "/etc/rc.env"})
	if got.ConfigFile != "/etc/rc.yml" || got.EnvFile != "/etc/rc.env" {
		t.Errorf("explicit paths should win, got %+v", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("CLIENT_BASE_URL")
	want := []string{"client_base_url", "client.base.url", "client.base_url"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := envKeyVariants("NAME"); len(got) != 1 || got[0] != "name" {
		t.Errorf("expected [name], got %v", got)
	}
}

func TestRemoveDuplicates(t *testing.T) {
	got := removeDuplicates([]string{"a", "b", "a", "c", "b"})
	if strings.Join(got, ",") != "a,b,c" {
		t.Errorf("expected [a b c], got %v", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem != fs {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}

type mockFS struct {
	files map[string]bool
	real  bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	if m.real {
		return (&RealFileSystem{}).LoadEnv(path)
	}
	return nil
}

func (m *mockFS) UserConfigDir() (string, error) { return "/home/u/.config", nil }
