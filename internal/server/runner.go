// Package server supervises the daemon's long-running components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// Component is a long-running part of the daemon. Start blocks until
// the context is cancelled or the component fails.
type Component interface {
	Start(ctx context.Context) error
	Name() string
}

// Runner supervises event handlers, the scheduler, and the HTTP server
// as one unit. The first failure stops everything.
type Runner struct {
	components []Component
	httpSrv    *http.Server
	logger     *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger.With("component", "runner")}
}

// Add registers a component to supervise.
func (r *Runner) Add(c Component) {
	r.components = append(r.components, c)
}

// SetHTTP attaches the HTTP server the runner should manage.
func (r *Runner) SetHTTP(srv *http.Server) {
	r.httpSrv = srv
}

// Run starts all components and blocks until the context is cancelled
// or one of them fails. Cancellation produces a clean shutdown and a
// nil error.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, c := range r.components {
		g.Go(func() error {
			r.logger.Info("component started", "name", c.Name())
			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s: %w", c.Name(), err)
			}
			r.logger.Info("component stopped", "name", c.Name())
			return nil
		})
	}

	if r.httpSrv != nil {
		g.Go(func() error {
			r.logger.Info("http server listening", "addr", r.httpSrv.Addr)
			if err := r.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := r.httpSrv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
