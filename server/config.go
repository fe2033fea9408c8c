package server

import (
	"fmt"

	"github.com/spiralnet/launchpad/config"
	"github.com/spiralnet/launchpad/server/middleware"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string                `yaml:"host" mapstructure:"host"`
	Port         int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout  int                   `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int                   `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int                   `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	MaxBodySize  string                `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "10MB"
	RateLimit    int                   `yaml:"rate_limit" mapstructure:"rate_limit"`       // requests/minute, 0 = off
	CORS         middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ConfigFromRuntime maps the resolved runtime configuration onto server
// configuration.
func ConfigFromRuntime(rt *config.Runtime) Config {
	cfg := Config{
		Host:         rt.Host,
		Port:         rt.Port,
		ReadTimeout:  rt.ReadTimeout,
		WriteTimeout: rt.WriteTimeout,
		IdleTimeout:  rt.IdleTimeout,
		MaxBodySize:  rt.MaxBodySize,
		RateLimit:    rt.RateLimitPerMinute,
		CORS: middleware.CORSConfig{
			AllowedOrigins: rt.AllowedOrigins,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults sets sensible default values for unset fields. Port 0 is
// left alone: it requests an ephemeral port, which tests rely on.
func (c *Config) ApplyDefaults() {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "10MB"
	}
	c.CORS.ApplyDefaults()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	return nil
}
