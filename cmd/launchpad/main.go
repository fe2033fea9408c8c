package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/spiralnet/launchpad/config"
	apperrors "github.com/spiralnet/launchpad/errors"
	"github.com/spiralnet/launchpad/launcher"
	"github.com/spiralnet/launchpad/provider"
	"github.com/spiralnet/launchpad/version"
)

func main() {
	os.Exit(run(context.Background()))
}

// run drives the bootstrap sequence: resolve configuration, load the
// application handler, then hand off to the launcher. Every startup failure
// exits non-zero after one stage-labeled diagnostic; a signal-initiated
// shutdown exits zero.
func run(ctx context.Context) int {
	cfg, err := config.Resolve()
	if err != nil {
		return fail(err)
	}

	registerDefaultApplication()

	handle, err := provider.Load(ctx, cfg.AppRef)
	if err != nil {
		return fail(err)
	}

	l, err := launcher.New(cfg, handle)
	if err != nil {
		return fail(err)
	}
	if err := l.Run(ctx); err != nil {
		return fail(err)
	}
	return 0
}

// fail writes a single diagnostic naming the stage that failed.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "launchpad: %s: %v\n", apperrors.FailedStage(err), err)
	return 1
}

var defaultAppOnce sync.Once

// registerDefaultApplication installs the built-in handler behind the
// default application reference. Safe to call repeatedly. Embedding services
// override it by registering their own provider and pointing APP_REF at it.
func registerDefaultApplication() {
	defaultAppOnce.Do(func() {
		provider.MustRegister(config.DefaultAppRef, provider.Func("launchpad-default", func(ctx context.Context) (http.Handler, error) {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprintf(w, `{"service":"launchpad","version":%q,"status":"ok"}`+"\n", version.Get().Version)
			}), nil
		}))
	})
}
