// internal/api/v1/deps.go
package v1

import (
	"context"
	"errors"

	"github.com/vmunix/scanarr/internal/emby"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/refresh"
)

// Orchestrator is the refresh surface the API exposes.
type Orchestrator interface {
	RunCampaign(ctx context.Context) []refresh.Outcome
	Submit()
	TestConnection(ctx context.Context) refresh.TestResult
	RecentHistory(limit int) []refresh.Outcome
	Refreshing() bool
}

// LibraryLister lists and resolves the media libraries known to the
// server. *emby.Directory satisfies it.
type LibraryLister interface {
	List(ctx context.Context) []emby.MediaLibrary
	Resolve(ctx context.Context, idOrName string) (emby.MediaLibrary, bool)
}

// ServerDeps contains all dependencies for the API server.
type ServerDeps struct {
	// Required
	Orchestrator Orchestrator
	Libraries    LibraryLister

	// Optional (nil when not configured)
	Bus      *events.Bus
	EventLog *events.EventLog
}

// Validate checks that required dependencies are present.
func (d ServerDeps) Validate() error {
	if d.Orchestrator == nil {
		return errors.New("orchestrator is required")
	}
	if d.Libraries == nil {
		return errors.New("library lister is required")
	}
	return nil
}
