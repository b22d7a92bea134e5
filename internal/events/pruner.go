// internal/events/pruner.go
package events

import (
	"context"
	"log/slog"
	"time"
)

// pruneInterval is how often the pruner sweeps the event log.
const pruneInterval = 6 * time.Hour

// Pruner deletes events older than a retention window so the events
// table does not grow without bound.
type Pruner struct {
	log      *EventLog
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger
}

// NewPruner creates a pruner that keeps events younger than maxAge.
func NewPruner(log *EventLog, maxAge time.Duration, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		log:      log,
		maxAge:   maxAge,
		interval: pruneInterval,
		logger:   logger.With("component", "pruner"),
	}
}

// Name identifies the pruner to the runner.
func (p *Pruner) Name() string { return "event-pruner" }

// Start sweeps once immediately, then on every interval until the
// context is cancelled.
func (p *Pruner) Start(ctx context.Context) error {
	p.prune()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.prune()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Pruner) prune() {
	removed, err := p.log.Prune(p.maxAge)
	if err != nil {
		p.logger.Error("event prune failed", "error", err)
		return
	}
	if removed > 0 {
		p.logger.Info("old events pruned", "removed", removed, "max_age", p.maxAge)
	}
}
