package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/spiralnet/launchpad/errors"
)

// noFS reports no files present so resolution only sees the process
// environment.
type noFS struct{}

func (noFS) Exists(string) bool   { return false }
func (noFS) LoadEnv(string) error { return nil }

func resolveEnvOnly(t *testing.T) (*Runtime, error) {
	t.Helper()
	return Resolve(WithFileSystem(noFS{}))
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := resolveEnvOnly(t)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("host = %s, want %s", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.AppRef != DefaultAppRef {
		t.Errorf("app_ref = %s, want %s", cfg.AppRef, DefaultAppRef)
	}
	if cfg.GracePeriod != DefaultGracePeriod {
		t.Errorf("grace period = %s, want %s", cfg.GracePeriod, DefaultGracePeriod)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment = %s, want development", cfg.Environment)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %s, want 0.0.0.0:8080", cfg.Addr())
	}
}

func TestResolvePortFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"lowest valid port", "1", 1},
		{"default-looking port", "8080", 8080},
		{"highest valid port", "65535", 65535},
		{"whitespace trimmed", " 9000 ", 9000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.env)
			cfg, err := resolveEnvOnly(t)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if cfg.Port != tt.want {
				t.Errorf("port = %d, want %d", cfg.Port, tt.want)
			}
		})
	}
}

func TestResolveInvalidPort(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"not a number", "abc"},
		{"zero", "0"},
		{"above range", "65536"},
		{"negative", "-1"},
		{"trailing garbage", "8080x"},
		{"float", "80.80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.env)
			cfg, err := resolveEnvOnly(t)
			if err == nil {
				t.Fatalf("expected error for PORT=%q, got config %+v", tt.env, cfg)
			}
			if !apperrors.IsConfig(err) {
				t.Errorf("expected CONFIG_INVALID, got %v", err)
			}
			if apperrors.FailedStage(err) != apperrors.StageConfig {
				t.Errorf("expected config stage, got %s", apperrors.FailedStage(err))
			}
		})
	}
}

func TestResolveGracePeriod(t *testing.T) {
	t.Run("valid seconds", func(t *testing.T) {
		t.Setenv("SHUTDOWN_GRACE_PERIOD", "30")
		cfg, err := resolveEnvOnly(t)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if cfg.GracePeriod != 30*time.Second {
			t.Errorf("grace period = %s, want 30s", cfg.GracePeriod)
		}
	})

	for _, bad := range []string{"0", "-5", "soon"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			t.Setenv("SHUTDOWN_GRACE_PERIOD", bad)
			if _, err := resolveEnvOnly(t); !apperrors.IsConfig(err) {
				t.Errorf("expected CONFIG_INVALID for %q, got %v", bad, err)
			}
		})
	}
}

func TestResolveEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "PORT=9191\nSERVICE_NAME=envfile-service\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("SERVICE_NAME")

	cfg, err := Resolve(WithFileSystem(&RealFileSystem{}), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Port != 9191 {
		t.Errorf("port = %d, want 9191 from env file", cfg.Port)
	}
	if cfg.Name != "envfile-service" {
		t.Errorf("name = %s, want envfile-service", cfg.Name)
	}
}

func TestProcessEnvBeatsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PORT=9191\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9292")

	cfg, err := Resolve(WithFileSystem(&RealFileSystem{}), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Port != 9292 {
		t.Errorf("port = %d, want 9292: process env must win over env file", cfg.Port)
	}
}

func TestResolveAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	cfg, err := resolveEnvOnly(t)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("origins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("origins[%d] = %s, want %s", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}

func TestResolveTelemetry(t *testing.T) {
	t.Run("endpoint implies enabled", func(t *testing.T) {
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
		cfg, err := resolveEnvOnly(t)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if !cfg.TelemetryEnabled {
			t.Error("OTLP endpoint should enable telemetry")
		}
	})

	t.Run("explicit disable wins", func(t *testing.T) {
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
		t.Setenv("OTEL_ENABLED", "false")
		cfg, err := resolveEnvOnly(t)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if cfg.TelemetryEnabled {
			t.Error("explicit OTEL_ENABLED=false must win over the endpoint")
		}
	})

	t.Run("invalid sample rate", func(t *testing.T) {
		t.Setenv("OTEL_SAMPLE_RATE", "lots")
		if _, err := resolveEnvOnly(t); !apperrors.IsConfig(err) {
			t.Errorf("expected CONFIG_INVALID, got %v", err)
		}
	})
}

func TestRuntimeValidate(t *testing.T) {
	valid := func() *Runtime {
		cfg := &Runtime{}
		cfg.ApplyDefaults()
		return cfg
	}

	t.Run("defaults validate", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("defaults should validate, got %v", err)
		}
	})

	t.Run("bad environment", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = "qa"
		if err := cfg.Validate(); !apperrors.IsConfig(err) {
			t.Errorf("expected CONFIG_INVALID, got %v", err)
		}
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Port = 70000
		if err := cfg.Validate(); !apperrors.IsConfig(err) {
			t.Errorf("expected CONFIG_INVALID, got %v", err)
		}
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := valid()
		cfg.Host = ""
		if err := cfg.Validate(); !apperrors.IsConfig(err) {
			t.Errorf("expected CONFIG_INVALID, got %v", err)
		}
	})

	t.Run("zero grace period", func(t *testing.T) {
		cfg := valid()
		cfg.GracePeriod = 0
		if err := cfg.Validate(); !apperrors.IsConfig(err) {
			t.Errorf("expected CONFIG_INVALID, got %v", err)
		}
	})
}
