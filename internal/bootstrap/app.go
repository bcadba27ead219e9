// Package bootstrap wires the configured stores and services together and
// manages their lifecycle.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
)

// App runs a command and releases its resources when it ends or is interrupted.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

func New() *App {
	return &App{}
}

// AddShutdownHook registers a function to call on shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run with a context that is cancelled on an OS interrupt.
// The shutdown hooks run once run returns, or as soon as the interrupt arrives
// since run may be blocked on terminal input.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return a.Shutdown(context.Background())
	case err := <-errCh:
		return errors.Join(err, a.Shutdown(context.Background()))
	}
}

// Shutdown calls the registered hooks once. Later calls are no-ops.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
