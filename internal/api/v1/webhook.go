// internal/api/v1/webhook.go
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vmunix/scanarr/internal/events"
)

// webhook accepts completion notifications from upstream pipeline tools
// and republishes them as pipeline events. The JSON body is optional.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	source := r.PathValue("source")

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	entityID := req.Path
	if entityID == "" {
		entityID = source
	}

	var event events.Event
	switch source {
	case "generate":
		event = &events.GenerateCompleted{
			BaseEvent: events.NewBaseEvent(events.EventGenerateCompleted, events.EntityPipeline, entityID),
			Path:      req.Path,
			Count:     req.Count,
		}
	case "rename":
		event = &events.RenameCompleted{
			BaseEvent: events.NewBaseEvent(events.EventRenameCompleted, events.EntityPipeline, entityID),
			Path:      req.Path,
			Count:     req.Count,
		}
	default:
		writeError(w, http.StatusBadRequest, "UNKNOWN_SOURCE", fmt.Sprintf("unknown webhook source %q", source))
		return
	}

	if err := s.deps.Bus.Publish(r.Context(), event); err != nil {
		writeError(w, http.StatusInternalServerError, "PUBLISH_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, acceptedResponse{Status: "accepted"})
}
