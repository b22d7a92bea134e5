// internal/api/v1/system.go
package v1

import (
	"fmt"
	"net/http"
	"time"
)

// listLibraries returns the media libraries reported by the server.
func (s *Server) listLibraries(w http.ResponseWriter, r *http.Request) {
	libs := s.deps.Libraries.List(r.Context())

	items := make([]libraryResponse, 0, len(libs))
	for _, l := range libs {
		items = append(items, libraryResponse{
			ID:             l.ID,
			Name:           l.Name,
			CollectionType: l.CollectionType,
		})
	}

	writeJSON(w, http.StatusOK, listLibrariesResponse{Items: items, Count: len(items)})
}

// getLibrary resolves one library by id or name, including fuzzy name
// matches, so callers do not need to know Emby's internal ids.
func (s *Server) getLibrary(w http.ResponseWriter, r *http.Request) {
	idOrName := r.PathValue("library")

	lib, ok := s.deps.Libraries.Resolve(r.Context(), idOrName)
	if !ok {
		writeError(w, http.StatusNotFound, "LIBRARY_NOT_FOUND", fmt.Sprintf("no library matches %q", idOrName))
		return
	}

	writeJSON(w, http.StatusOK, libraryResponse{
		ID:             lib.ID,
		Name:           lib.Name,
		CollectionType: lib.CollectionType,
	})
}

// testConnection probes the media server and reports reachability.
func (s *Server) testConnection(w http.ResponseWriter, r *http.Request) {
	result := s.deps.Orchestrator.TestConnection(r.Context())

	resp := testResponse{Success: result.Success, Message: result.Message}
	if result.ServerInfo != nil {
		resp.Server = &serverInfoResponse{
			Name:            result.ServerInfo.ServerName,
			Version:         result.ServerInfo.Version,
			ID:              result.ServerInfo.ID,
			OperatingSystem: result.ServerInfo.OperatingSystem,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// getStatus reports daemon health and configuration.
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Version:        s.cfg.Version,
		EmbyConfigured: s.cfg.EmbyConfigured,
		Refreshing:     s.deps.Orchestrator.Refreshing(),
		HistoryCount:   len(s.deps.Orchestrator.RecentHistory(0)),
		UptimeSeconds:  int64(time.Since(s.started).Seconds()),
	})
}
