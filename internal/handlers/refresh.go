// internal/handlers/refresh.go
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/refresh"
)

// Refresher submits refresh campaigns in response to pipeline events.
type Refresher interface {
	TriggerOnEvent(trigger string) bool
}

// RefreshHandler watches pipeline events and hands them to the refresh
// orchestrator. Whether a campaign actually starts is the orchestrator's
// call; the handler only translates events into triggers.
type RefreshHandler struct {
	*BaseHandler
	orchestrator Refresher
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(bus *events.Bus, orchestrator Refresher, logger *slog.Logger) *RefreshHandler {
	return &RefreshHandler{
		BaseHandler:  NewBaseHandler(bus, logger),
		orchestrator: orchestrator,
	}
}

// Name returns the handler name.
func (h *RefreshHandler) Name() string {
	return "refresh"
}

// Start begins processing events.
func (h *RefreshHandler) Start(ctx context.Context) error {
	generated := h.Bus().Subscribe(events.EventGenerateCompleted, 100)
	renamed := h.Bus().Subscribe(events.EventRenameCompleted, 100)

	for {
		select {
		case e := <-generated:
			if e == nil {
				return nil // Channel closed
			}
			h.handleGenerateCompleted(e.(*events.GenerateCompleted))
		case e := <-renamed:
			if e == nil {
				return nil // Channel closed
			}
			h.handleRenameCompleted(e.(*events.RenameCompleted))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// TriggerOnEvent never blocks, so events are handled inline rather than
// in per-event goroutines.
func (h *RefreshHandler) handleGenerateCompleted(e *events.GenerateCompleted) {
	h.Logger().Info("strm generation reported", "path", e.Path, "count", e.Count)

	if h.orchestrator.TriggerOnEvent(refresh.TriggerGenerate) {
		h.Logger().Debug("refresh campaign submitted", "trigger", refresh.TriggerGenerate)
	}
}

func (h *RefreshHandler) handleRenameCompleted(e *events.RenameCompleted) {
	h.Logger().Info("rename run reported", "path", e.Path, "count", e.Count)

	if h.orchestrator.TriggerOnEvent(refresh.TriggerRename) {
		h.Logger().Debug("refresh campaign submitted", "trigger", refresh.TriggerRename)
	}
}
