package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spiralnet/launchpad/errors"
	"github.com/spiralnet/launchpad/logger"
)

// Defaults for the listen address. The container contract is "bind to the
// platform-supplied PORT, defaulting to 8080"; with no overrides the process
// binds 0.0.0.0:8080.
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8080

	// DefaultGracePeriod bounds how long in-flight requests may drain after a
	// shutdown signal before the listener is force-closed.
	DefaultGracePeriod = 15 * time.Second

	// DefaultAppRef is the fixed location reference of the application object.
	DefaultAppRef = "app.main:app"
)

// Runtime is the immutable, process-lifetime runtime configuration.
// Exactly one Runtime exists per process; the bound port is fixed for the
// process lifetime.
type Runtime struct {
	Name        string `validate:"required"`
	Environment string `validate:"oneof=development staging production"`

	Host string `validate:"required"`
	Port int    `validate:"gte=1,lte=65535"`

	// AppRef locates the application object, module-path:attribute style.
	AppRef string `validate:"required"`

	GracePeriod time.Duration `validate:"gt=0"`

	// Server timeouts in seconds.
	ReadTimeout  int `validate:"gte=0"`
	WriteTimeout int `validate:"gte=0"`
	IdleTimeout  int `validate:"gte=0"`

	MaxBodySize        string
	RateLimitPerMinute int `validate:"gte=0"`
	AllowedOrigins     []string

	Logging logger.Config

	// Telemetry export is off unless an OTLP endpoint is configured.
	TelemetryEnabled    bool
	OTLPEndpoint        string
	TelemetrySampleRate float64 `validate:"gte=0,lte=1"`
}

var validate = validator.New()

// ApplyDefaults fills unset fields with documented defaults.
func (c *Runtime) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "launchpad"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.AppRef == "" {
		c.AppRef = DefaultAppRef
	}
	if c.GracePeriod == 0 {
		c.GracePeriod = DefaultGracePeriod
	}
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
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.TelemetrySampleRate == 0 {
		c.TelemetrySampleRate = 1.0
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration. All failures are ConfigInvalid errors;
// the process must not bind a listener when Validate returns an error.
func (c *Runtime) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.ConfigInvalid(strings.ToLower(fe.Field()), validationReason(fe))
		}
		return apperrors.ConfigInvalid("runtime", err.Error())
	}
	if err := c.Logging.Validate(); err != nil {
		return apperrors.ConfigInvalid("logging", err.Error())
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Runtime) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "gte", "lte", "gt", "lt":
		return fmt.Sprintf("value %v out of range (%s %s)", fe.Value(), fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("value %v must be one of [%s]", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
