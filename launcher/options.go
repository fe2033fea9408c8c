package launcher

import (
	"github.com/spiralnet/launchpad/component"
	"github.com/spiralnet/launchpad/logger"
)

// Option customizes a Launcher at construction time.
type Option func(*Launcher)

// WithLogger replaces the logger derived from the runtime configuration.
func WithLogger(log *logger.Logger) Option {
	return func(l *Launcher) { l.log = log }
}

// WithComponent registers an extra lifecycle component. Components start in
// registration order after the built-in ones and stop in reverse.
func WithComponent(c component.Component) Option {
	return func(l *Launcher) { l.extra = append(l.extra, c) }
}

// WithOnStart adds a hook that runs before any component starts.
func WithOnStart(h Hook) Option {
	return func(l *Launcher) { l.onStart = append(l.onStart, h) }
}

// WithOnReady adds a hook that runs once the service is serving.
func WithOnReady(h Hook) Option {
	return func(l *Launcher) { l.onReady = append(l.onReady, h) }
}

// WithOnStop adds a hook that runs during shutdown before components stop.
func WithOnStop(h Hook) Option {
	return func(l *Launcher) { l.onStop = append(l.onStop, h) }
}
