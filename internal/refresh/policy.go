package refresh

import "github.com/vmunix/scanarr/internal/config"

// Trigger tokens carried on refresh requests and campaign events.
const (
	TriggerGenerate = "strm_generate"
	TriggerRename   = "rename"
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

// ShouldRefresh reports whether a trigger starts a campaign under the
// given policy. Pure function: no I/O, no state.
//
// Scheduled triggers are governed by whether a cron expression is
// configured at all; the scheduler only fires when one is. Unknown
// triggers never refresh.
func ShouldRefresh(trigger string, policy config.TriggerPolicy) bool {
	switch trigger {
	case TriggerGenerate:
		return policy.OnGenerate
	case TriggerRename:
		return policy.OnRename
	case TriggerSchedule:
		return policy.Cron != ""
	default:
		return false
	}
}
