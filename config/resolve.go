package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/spiralnet/launchpad/errors"
	"github.com/spiralnet/launchpad/logger"
)

// FileSystem abstracts file operations so resolution is testable.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// resolverOptions holds dependencies and optional file overrides.
type resolverOptions struct {
	fs         FileSystem
	configFile string
	envFile    string
}

// Option customizes Resolve.
type Option func(*resolverOptions)

// WithFileSystem sets a custom filesystem for resolution.
func WithFileSystem(fs FileSystem) Option {
	return func(o *resolverOptions) { o.fs = fs }
}

// WithConfigFile sets an explicit YAML config file path.
func WithConfigFile(path string) Option {
	return func(o *resolverOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *resolverOptions) { o.envFile = path }
}

// envFileSearchPaths are the standard locations checked for a .env file.
var envFileSearchPaths = []string{
	".env",
	"config/.env",
	"../.env",
}

// configFileSearchPaths are the standard locations checked for config.yml.
var configFileSearchPaths = []string{
	"config.yml",
	"config/config.yml",
	"cmd/launchpad/config.yml",
}

// Resolve reads the runtime configuration. The precedence, lowest to
// highest, is: built-in defaults, YAML config file, .env file, process
// environment. Resolve is called once at process start; the returned
// Runtime is never mutated afterwards.
func Resolve(opts ...Option) (*Runtime, error) {
	var o resolverOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = &RealFileSystem{}
	}

	// .env first so viper's automatic env sees its variables.
	if path := findFile(o.fs, o.envFile, envFileSearchPaths); path != "" {
		if err := o.fs.LoadEnv(path); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load env file %s: %v\n", path, err)
		}
	}

	v := viper.New()
	v.SetDefault("service_name", "launchpad")
	v.SetDefault("environment", "development")
	v.SetDefault("host", DefaultHost)
	v.SetDefault("app_ref", DefaultAppRef)

	if path := findFile(o.fs, o.configFile, configFileSearchPaths); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to read config file %s: %v\n", path, err)
		}
	}

	v.AutomaticEnv()

	cfg := &Runtime{
		Name:               v.GetString("service_name"),
		Environment:        v.GetString("environment"),
		Host:               v.GetString("host"),
		AppRef:             v.GetString("app_ref"),
		ReadTimeout:        v.GetInt("read_timeout"),
		WriteTimeout:       v.GetInt("write_timeout"),
		IdleTimeout:        v.GetInt("idle_timeout"),
		MaxBodySize:        v.GetString("max_body_size"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		TelemetryEnabled:   v.GetBool("otel_enabled"),
		OTLPEndpoint:       v.GetString("otel_exporter_otlp_endpoint"),
		Logging: logger.Config{
			Level:   v.GetString("log_level"),
			Format:  v.GetString("log_format"),
			Output:  v.GetString("log_output"),
			NoColor: v.GetBool("log_no_color"),
		},
	}

	port, err := resolvePort(v.GetString("port"))
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	grace, err := resolveGracePeriod(v.GetString("shutdown_grace_period"))
	if err != nil {
		return nil, err
	}
	cfg.GracePeriod = grace

	if rate := v.GetString("otel_sample_rate"); rate != "" {
		sr, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return nil, apperrors.ConfigInvalid("otel_sample_rate", fmt.Sprintf("%q is not a valid number", rate))
		}
		cfg.TelemetrySampleRate = sr
	}

	if origins := v.GetString("allowed_origins"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	}

	// An OTLP endpoint implies telemetry unless explicitly disabled.
	if cfg.OTLPEndpoint != "" && !v.IsSet("otel_enabled") {
		cfg.TelemetryEnabled = true
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePort parses the platform-supplied PORT value. An empty value falls
// back to the documented default; anything else must be an integer in
// [1, 65535].
func resolvePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ConfigInvalid("port", fmt.Sprintf("%q is not a valid integer", raw))
	}
	if port < 1 || port > 65535 {
		return 0, apperrors.ConfigInvalid("port", fmt.Sprintf("%d out of range [1, 65535]", port))
	}
	return port, nil
}

// resolveGracePeriod parses SHUTDOWN_GRACE_PERIOD as seconds.
func resolveGracePeriod(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultGracePeriod, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0, apperrors.ConfigInvalid("shutdown_grace_period", fmt.Sprintf("%q is not a positive integer of seconds", raw))
	}
	return time.Duration(secs) * time.Second, nil
}

func findFile(fs FileSystem, explicit string, searchPaths []string) string {
	if explicit != "" {
		if fs.Exists(explicit) {
			return explicit
		}
		return ""
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
