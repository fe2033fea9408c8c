package launcher

import (
	"context"
	"fmt"

	"github.com/spiralnet/launchpad/logger"
)

// Hook is a lifecycle callback. Start and ready hooks abort startup when
// they fail; stop hook failures are logged and do not block shutdown.
type Hook func(ctx context.Context) error

func (l *Launcher) runStartupHooks(ctx context.Context, phase string, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			l.log.Error("lifecycle hook failed", map[string]interface{}{
				logger.FieldPhase: phase,
				"hook_index":      i,
				logger.FieldError: err.Error(),
			})
			return fmt.Errorf("%s hook %d: %w", phase, i, err)
		}
	}
	return nil
}

func (l *Launcher) runStopHooks(ctx context.Context) {
	for i, h := range l.onStop {
		if err := h(ctx); err != nil {
			l.log.Error("stop hook failed", map[string]interface{}{
				"hook_index":      i,
				logger.FieldError: err.Error(),
			})
		}
	}
}
