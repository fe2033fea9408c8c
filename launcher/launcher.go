package launcher

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spiralnet/launchpad/component"
	"github.com/spiralnet/launchpad/config"
	apperrors "github.com/spiralnet/launchpad/errors"
	"github.com/spiralnet/launchpad/logger"
	"github.com/spiralnet/launchpad/observability"
	"github.com/spiralnet/launchpad/provider"
	"github.com/spiralnet/launchpad/server"
	"github.com/spiralnet/launchpad/version"
)

// Launcher wires the runtime configuration, the loaded application handle
// and the lifecycle components into a single runnable process.
type Launcher struct {
	cfg    *config.Runtime
	handle *provider.Handle
	log    *logger.Logger

	srv      *server.Server
	registry *component.Registry
	extra    []component.Component

	onStart []Hook
	onReady []Hook
	onStop  []Hook

	mu    sync.Mutex
	state State
}

// New builds a Launcher. The configuration must already be resolved; New
// validates it again so a hand-built Runtime cannot bypass the contract.
func New(cfg *config.Runtime, handle *provider.Handle, opts ...Option) (*Launcher, error) {
	if cfg == nil {
		return nil, apperrors.ConfigInvalid("runtime", "configuration is nil")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, apperrors.ApplicationLoad(cfg.AppRef, fmt.Errorf("application handle is nil"))
	}

	l := &Launcher{
		cfg:    cfg,
		handle: handle,
		state:  StateUnstarted,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.New(&cfg.Logging, cfg.Name)
		logger.SetGlobalLogger(l.log)
	}

	telemetry := observability.NewTelemetry(observability.Config{
		ServiceName:    cfg.Name,
		ServiceVersion: version.Get().Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
		SampleRate:     cfg.TelemetrySampleRate,
	}, cfg.TelemetryEnabled)

	srv := server.New(server.ConfigFromRuntime(cfg), l.log)
	if cfg.TelemetryEnabled {
		// The global meter delegates, so instruments created here bind to
		// the real provider once telemetry starts.
		if m, err := observability.NewServerMetrics(observability.Meter("github.com/spiralnet/launchpad/server")); err == nil {
			srv.WithMetrics(m)
		}
	}

	l.registry = component.NewRegistry()
	if err := l.registry.Register(telemetry); err != nil {
		return nil, err
	}
	if err := l.registry.Register(server.NewComponent(srv)); err != nil {
		return nil, err
	}
	for _, c := range l.extra {
		if err := l.registry.Register(c); err != nil {
			return nil, err
		}
	}

	srv.RegisterSystemEndpoints(cfg.Name, l.registry.HealthAll)
	srv.MountApplication(handle.Handler())
	l.srv = srv
	return l, nil
}

// State returns the current lifecycle state.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Addr returns the listen address, including the bound ephemeral port once
// the listener is up.
func (l *Launcher) Addr() string {
	return l.srv.Addr()
}

func (l *Launcher) transition(to State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !ValidTransition(l.state, to) {
		panic(fmt.Sprintf("invalid lifecycle transition %s -> %s", l.state, to))
	}
	l.state = to
}

// Run executes the full lifecycle and blocks until shutdown completes. It
// returns nil after a signal-initiated graceful shutdown, even when parts of
// the shutdown were forced; it returns the startup error when the service
// never reached the serving state.
func (l *Launcher) Run(ctx context.Context) error {
	started := time.Now()
	l.log.Info("starting service", map[string]interface{}{
		"service":          l.cfg.Name,
		"environment":      l.cfg.Environment,
		"version":          version.Get().Version,
		logger.FieldAppRef: l.handle.Ref(),
		logger.FieldAddr:   l.cfg.Addr(),
	})

	if err := l.runStartupHooks(ctx, "on_start", l.onStart); err != nil {
		return err
	}

	if err := l.registry.StartAll(ctx); err != nil {
		if apperrors.IsBind(err) {
			l.transition(StateBindFailed)
		}
		l.stopStarted()
		return err
	}
	l.transition(StateBound)
	l.transition(StateServing)

	if err := l.runStartupHooks(ctx, "on_ready", l.onReady); err != nil {
		l.transition(StateShuttingDown)
		l.stopStarted()
		l.transition(StateStopped)
		return err
	}

	l.printSummary(time.Since(started))
	l.waitForShutdown(ctx)

	l.transition(StateShuttingDown)
	stopCtx, cancel := context.WithTimeout(context.Background(), l.cfg.GracePeriod)
	defer cancel()

	l.runStopHooks(stopCtx)
	if err := l.registry.StopAll(stopCtx); err != nil {
		l.log.Error("shutdown completed with errors", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}
	l.transition(StateStopped)
	l.log.Info("service stopped", map[string]interface{}{
		"uptime": time.Since(started).String(),
	})
	return nil
}

// stopStarted cleans up after a failed startup. Errors are logged only; the
// startup error is what the caller reports.
func (l *Launcher) stopStarted() {
	stopCtx, cancel := context.WithTimeout(context.Background(), l.cfg.GracePeriod)
	defer cancel()
	if err := l.registry.StopAll(stopCtx); err != nil {
		l.log.Error("cleanup after failed start", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}
}

func (l *Launcher) waitForShutdown(ctx context.Context) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		l.log.Info("shutdown signal received", map[string]interface{}{
			logger.FieldSignal: s.String(),
		})
	case <-ctx.Done():
		l.log.Info("context canceled, shutting down")
	}
}
