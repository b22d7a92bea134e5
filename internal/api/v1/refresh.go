// internal/api/v1/refresh.go
package v1

import "net/http"

const (
	defaultHistoryLimit = 50
	maxLimit            = 1000
)

// runRefresh triggers a refresh campaign and waits for it to finish.
// An empty outcome list means the single-flight guard dropped the
// request because a campaign is already in flight.
func (s *Server) runRefresh(w http.ResponseWriter, r *http.Request) {
	outcomes := s.deps.Orchestrator.RunCampaign(r.Context())
	if len(outcomes) == 0 {
		writeError(w, http.StatusConflict, "REFRESH_IN_PROGRESS", "a refresh campaign is already running")
		return
	}

	var succeeded, failed int
	for _, o := range outcomes {
		if o.Success {
			succeeded++
		} else {
			failed++
		}
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Outcomes:  outcomes,
		Succeeded: succeeded,
		Failed:    failed,
	})
}

// submitRefresh queues a refresh campaign without waiting for it.
func (s *Server) submitRefresh(w http.ResponseWriter, r *http.Request) {
	s.deps.Orchestrator.Submit()
	writeJSON(w, http.StatusAccepted, acceptedResponse{Status: "accepted"})
}

// listHistory returns recent refresh outcomes, most recent first.
func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items := s.deps.Orchestrator.RecentHistory(limit)
	writeJSON(w, http.StatusOK, listHistoryResponse{
		Items: items,
		Count: len(items),
		Limit: limit,
	})
}
