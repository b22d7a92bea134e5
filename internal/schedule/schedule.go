// Package schedule runs refresh campaigns on a cron timetable.
package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/vmunix/scanarr/internal/refresh"
)

// Submitter accepts trigger requests from the scheduler.
type Submitter interface {
	TriggerOnEvent(trigger string) bool
}

// Scheduler fires refresh campaigns according to a cron expression.
type Scheduler struct {
	expr   string
	target Submitter
	logger *slog.Logger
	cron   *cron.Cron
}

// NewScheduler parses the cron expression and prepares the scheduler.
// Standard five-field expressions and descriptors like @daily are accepted.
func NewScheduler(expr string, target Submitter, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		expr:   expr,
		target: target,
		logger: logger.With("component", "scheduler"),
	}

	c := cron.New()
	if _, err := c.AddFunc(expr, s.tick); err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}
	s.cron = c
	return s, nil
}

// Name identifies the scheduler to the runner.
func (s *Scheduler) Name() string { return "scheduler" }

// Start runs the cron loop until the context is cancelled. Any tick
// already in flight finishes before Start returns.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("schedule active", "cron", s.expr)
	s.cron.Start()

	<-ctx.Done()
	stop := s.cron.Stop()
	<-stop.Done()
	return ctx.Err()
}

func (s *Scheduler) tick() {
	if !s.target.TriggerOnEvent(refresh.TriggerSchedule) {
		s.logger.Debug("scheduled refresh not submitted")
	}
}
