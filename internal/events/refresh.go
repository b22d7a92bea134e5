// internal/events/refresh.go
package events

// Entity types
const (
	EntityPipeline = "pipeline"
	EntityCampaign = "campaign"
)

// Event type constants
const (
	EventGenerateCompleted = "generate.completed"
	EventRenameCompleted   = "rename.completed"
	EventRefreshStarted    = "refresh.started"
	EventRefreshCompleted  = "refresh.completed"
	EventRefreshSkipped    = "refresh.skipped"
)

// GenerateCompleted is emitted when an upstream tool reports a finished
// STRM generation run, usually via the webhook endpoint.
type GenerateCompleted struct {
	BaseEvent
	Path  string `json:"path,omitempty"`  // library path the run wrote into
	Count int    `json:"count,omitempty"` // items the run produced
}

// RenameCompleted is emitted when an upstream tool reports a finished
// rename/organize run.
type RenameCompleted struct {
	BaseEvent
	Path  string `json:"path,omitempty"`
	Count int    `json:"count,omitempty"`
}

// RefreshStarted is emitted when a refresh campaign begins.
type RefreshStarted struct {
	BaseEvent
	Trigger string `json:"trigger"` // "strm_generate", "rename", "schedule", "manual"
}

// RefreshCompleted is emitted when a refresh campaign finishes.
type RefreshCompleted struct {
	BaseEvent
	Trigger   string `json:"trigger"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

// RefreshSkipped is emitted when a trigger does not start a campaign,
// either declined by policy or dropped because one was already running.
type RefreshSkipped struct {
	BaseEvent
	Trigger string `json:"trigger"`
	Reason  string `json:"reason"`
}
