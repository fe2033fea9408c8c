package observability

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/spiralnet/launchpad/component"
)

const componentName = "telemetry"

var _ component.Component = (*Telemetry)(nil)
var _ component.Describable = (*Telemetry)(nil)

// Telemetry is the lifecycle component wrapping the OTLP trace and metric
// providers. When disabled it is inert and always healthy.
type Telemetry struct {
	cfg     Config
	enabled bool

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// NewTelemetry creates the telemetry component. cfg defaults are applied.
func NewTelemetry(cfg Config, enabled bool) *Telemetry {
	cfg.ApplyDefaults()
	return &Telemetry{cfg: cfg, enabled: enabled}
}

// Name returns the component name used for registration.
func (t *Telemetry) Name() string { return componentName }

// Start initializes the global tracer and meter providers. Export is lazy:
// an unreachable collector does not fail startup, only drops batches.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.enabled {
		return nil
	}

	tp, err := InitTracer(ctx, t.cfg)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	t.tp = tp

	mp, err := InitMeter(ctx, t.cfg)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	t.mp = mp
	return nil
}

// Stop flushes and shuts down both providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var firstErr error
	if t.tp != nil {
		if err := t.tp.Shutdown(ctx); err != nil {
			firstErr = fmt.Errorf("telemetry: tracer shutdown: %w", err)
		}
		t.tp = nil
	}
	if t.mp != nil {
		if err := t.mp.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("telemetry: meter shutdown: %w", err)
		}
		t.mp = nil
	}
	return firstErr
}

// Health reports healthy whenever the component is disabled or initialized.
func (t *Telemetry) Health(ctx context.Context) component.Health {
	if t.enabled && t.tp == nil {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "telemetry enabled but not initialized",
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe returns summary info for the launch summary.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.enabled {
		details = t.cfg.Endpoint
	}
	return component.Description{
		Name:    "Telemetry",
		Type:    "telemetry",
		Details: details,
	}
}
