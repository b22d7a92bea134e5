// Package refresh runs Emby library refresh campaigns. A campaign walks
// the configured library targets (or triggers a full-library refresh when
// none are configured), records an outcome per call, and reports the
// result through the event bus, the history ledger and notifications.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vmunix/scanarr/internal/config"
	"github.com/vmunix/scanarr/internal/emby"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/notify"
)

const (
	// interCallDelay paces successive refresh calls so the media server
	// is not hammered when many libraries are configured.
	interCallDelay = 500 * time.Millisecond

	notifyTimeout = 30 * time.Second
)

// EmbyAPI is the Emby surface the orchestrator and its collaborators use.
type EmbyAPI interface {
	SystemInfo(ctx context.Context) (*emby.SystemInfo, error)
	MediaFolders(ctx context.Context) ([]emby.MediaLibrary, error)
	RefreshAll(ctx context.Context) error
	RefreshLibrary(ctx context.Context, id string) error
}

// Publisher publishes campaign events. *events.Bus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Notifier delivers the end-of-campaign summary.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// TestResult is the outcome of a connectivity check.
type TestResult struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	ServerInfo *emby.SystemInfo `json:"server_info,omitempty"`
}

// Orchestrator coordinates refresh campaigns. At most one campaign runs
// at a time; triggers arriving while one is running are dropped, not
// queued.
type Orchestrator struct {
	cfg      config.EmbyConfig
	api      EmbyAPI
	dir      *emby.Directory
	history  *History
	notifier Notifier  // optional
	bus      Publisher // optional
	logger   *slog.Logger

	running atomic.Bool
	delay   time.Duration
}

// NewOrchestrator creates an orchestrator. The directory is used to
// resolve library display names for outcomes.
func NewOrchestrator(cfg config.EmbyConfig, api EmbyAPI, dir *emby.Directory, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:     cfg,
		api:     api,
		dir:     dir,
		history: NewHistory(cfg.HistorySize),
		logger:  logger,
		delay:   interCallDelay,
	}
}

// SetNotifier enables end-of-campaign notifications.
func (o *Orchestrator) SetNotifier(n Notifier) {
	o.notifier = n
}

// SetBus enables campaign event publishing.
func (o *Orchestrator) SetBus(bus Publisher) {
	o.bus = bus
}

// SetDelay overrides the pacing delay between successive refresh calls.
func (o *Orchestrator) SetDelay(d time.Duration) {
	o.delay = d
}

// RunCampaign runs a manually triggered campaign and blocks until it
// finishes, returning one outcome per refresh call in call order. If a
// campaign is already running the request is dropped and an empty slice
// returned.
func (o *Orchestrator) RunCampaign(ctx context.Context) []Outcome {
	return o.run(ctx, TriggerManual)
}

// Submit schedules a manual campaign without waiting for it.
func (o *Orchestrator) Submit() {
	go o.run(context.Background(), TriggerManual)
}

// TriggerOnEvent evaluates the trigger against the configured policy and,
// if it passes, starts a campaign in the background. It reports whether a
// campaign was submitted and never blocks on the campaign itself.
func (o *Orchestrator) TriggerOnEvent(trigger string) bool {
	if !o.cfg.Configured() {
		o.logger.Debug("trigger ignored, emby not configured", "trigger", trigger)
		return false
	}
	if !ShouldRefresh(trigger, o.cfg.Triggers) {
		o.logger.Debug("trigger declined by policy", "trigger", trigger)
		o.publish(context.Background(), &events.RefreshSkipped{
			BaseEvent: events.NewBaseEvent(events.EventRefreshSkipped, events.EntityCampaign, trigger),
			Trigger:   trigger,
			Reason:    "declined by policy",
		})
		return false
	}

	// The campaign runs on its own context so a caller going away
	// cannot abort it mid-flight.
	go o.run(context.Background(), trigger)
	return true
}

// TestConnection checks connectivity and credentials against the server.
// It does not take the campaign guard and is safe to call at any time.
func (o *Orchestrator) TestConnection(ctx context.Context) TestResult {
	if !o.cfg.Configured() {
		return TestResult{Message: "emby integration is not configured"}
	}

	info, err := o.api.SystemInfo(ctx)
	if err != nil {
		return TestResult{Message: err.Error()}
	}
	return TestResult{
		Success:    true,
		Message:    fmt.Sprintf("connected to %s (version %s)", info.ServerName, info.Version),
		ServerInfo: info,
	}
}

// RecentHistory returns up to limit past outcomes, most recent first.
func (o *Orchestrator) RecentHistory(limit int) []Outcome {
	return o.history.Recent(limit)
}

// Refreshing reports whether a campaign is currently running.
func (o *Orchestrator) Refreshing() bool {
	return o.running.Load()
}

func (o *Orchestrator) run(ctx context.Context, trigger string) []Outcome {
	if !o.cfg.Configured() {
		o.logger.Warn("refresh requested but emby is not configured", "trigger", trigger)
		return []Outcome{newOutcome(false, "", "", "emby integration is not configured")}
	}

	if !o.running.CompareAndSwap(false, true) {
		o.logger.Info("refresh already in progress, dropping request", "trigger", trigger)
		o.publish(ctx, &events.RefreshSkipped{
			BaseEvent: events.NewBaseEvent(events.EventRefreshSkipped, events.EntityCampaign, trigger),
			Trigger:   trigger,
			Reason:    "already running",
		})
		return []Outcome{}
	}
	defer o.running.Store(false)

	targets := o.cfg.Triggers.Libraries
	o.logger.Info("refresh campaign started", "trigger", trigger, "targets", len(targets))
	o.publish(ctx, &events.RefreshStarted{
		BaseEvent: events.NewBaseEvent(events.EventRefreshStarted, events.EntityCampaign, trigger),
		Trigger:   trigger,
	})

	var outcomes []Outcome
	if len(targets) == 0 {
		outcomes = []Outcome{o.refreshAllLibraries(ctx)}
	} else {
		outcomes = o.refreshEach(ctx, targets)
	}

	for _, out := range outcomes {
		o.history.Append(out)
	}

	succeeded, failed := tally(outcomes)
	o.logger.Info("refresh campaign finished", "trigger", trigger, "succeeded", succeeded, "failed", failed)
	o.publish(ctx, &events.RefreshCompleted{
		BaseEvent: events.NewBaseEvent(events.EventRefreshCompleted, events.EntityCampaign, trigger),
		Trigger:   trigger,
		Succeeded: succeeded,
		Failed:    failed,
	})

	if o.cfg.NotifyOnComplete && o.notifier != nil {
		o.notifyAsync(succeeded, failed)
	}

	return outcomes
}

// refreshEach refreshes the given libraries one by one, pacing calls and
// isolating failures so one bad library never stops the rest.
func (o *Orchestrator) refreshEach(ctx context.Context, ids []string) []Outcome {
	names := o.libraryNames(ctx)

	outcomes := make([]Outcome, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			time.Sleep(o.delay)
		}
		name := names[id]
		if name == "" {
			name = id
		}
		outcomes = append(outcomes, o.refreshOne(ctx, id, name))
	}
	return outcomes
}

func (o *Orchestrator) refreshAllLibraries(ctx context.Context) Outcome {
	if err := o.api.RefreshAll(ctx); err != nil {
		o.logger.Error("full library refresh failed", "error", err)
		return newOutcome(false, "", "", err.Error())
	}
	o.logger.Debug("full library refresh triggered")
	return newOutcome(true, "", "", "full library refresh triggered")
}

func (o *Orchestrator) refreshOne(ctx context.Context, id, name string) Outcome {
	if err := o.api.RefreshLibrary(ctx, id); err != nil {
		o.logger.Error("library refresh failed", "library_id", id, "library_name", name, "error", err)
		return newOutcome(false, id, name, err.Error())
	}
	o.logger.Debug("library refresh triggered", "library_id", id, "library_name", name)
	return newOutcome(true, id, name, "refresh triggered")
}

// libraryNames maps library IDs to display names. Listing failures leave
// the map empty; outcomes then fall back to raw IDs.
func (o *Orchestrator) libraryNames(ctx context.Context) map[string]string {
	libs := o.dir.List(ctx)
	names := make(map[string]string, len(libs))
	for _, l := range libs {
		names[l.ID] = l.Name
	}
	return names
}

func (o *Orchestrator) notifyAsync(succeeded, failed int) {
	msg := notify.Message{
		Title: "Library refresh complete",
		Body:  fmt.Sprintf("%d succeeded, %d failed", succeeded, failed),
		Tags:  []string{"scanarr", "refresh"},
	}
	if failed > 0 {
		msg.Priority = "high"
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := o.notifier.Send(ctx, msg); err != nil {
			o.logger.Warn("refresh notification failed", "error", err)
		}
	}()
}

func (o *Orchestrator) publish(ctx context.Context, e events.Event) {
	if o.bus == nil {
		return
	}
	if err := o.bus.Publish(ctx, e); err != nil {
		o.logger.Warn("event publish failed", "type", e.EventType(), "error", err)
	}
}
