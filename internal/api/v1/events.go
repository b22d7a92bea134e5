// internal/api/v1/events.go
package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vmunix/scanarr/internal/events"
)

type eventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt string          `json:"occurred_at"`
}

type listEventsResponse struct {
	Items  []eventResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// listEvents returns recent events from the event log, newest first.
// With entity_type and entity_id set it instead returns the full trail
// for that entity, oldest first and unpaginated.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	if s.deps.EventLog == nil {
		writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "event log is not configured")
		return
	}

	entityType := r.URL.Query().Get("entity_type")
	entityID := r.URL.Query().Get("entity_id")
	if (entityType == "") != (entityID == "") {
		writeError(w, http.StatusBadRequest, "INVALID_FILTER", "entity_type and entity_id must be given together")
		return
	}
	if entityType != "" {
		s.listEntityEvents(w, entityType, entityID)
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 0 || offset < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit and offset must be non-negative")
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	raw, total, err := s.deps.EventLog.Recent(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listEventsResponse{
		Items:  toEventResponses(raw),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *Server) listEntityEvents(w http.ResponseWriter, entityType, entityID string) {
	raw, err := s.deps.EventLog.ForEntity(entityType, entityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}

	items := toEventResponses(raw)
	writeJSON(w, http.StatusOK, listEventsResponse{
		Items: items,
		Total: len(items),
		Limit: len(items),
	})
}

func toEventResponses(raw []events.RawEvent) []eventResponse {
	items := make([]eventResponse, 0, len(raw))
	for _, e := range raw {
		items = append(items, eventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Payload:    json.RawMessage(e.Payload),
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		})
	}
	return items
}
