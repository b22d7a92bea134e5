// internal/api/v1/types.go
package v1

import "github.com/vmunix/scanarr/internal/refresh"

// refreshResponse is returned by POST /api/v1/refresh.
type refreshResponse struct {
	Outcomes  []refresh.Outcome `json:"outcomes"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// acceptedResponse is returned by endpoints that queue work.
type acceptedResponse struct {
	Status string `json:"status"`
}

// listHistoryResponse is returned by GET /api/v1/refresh/history.
type listHistoryResponse struct {
	Items []refresh.Outcome `json:"items"`
	Count int               `json:"count"`
	Limit int               `json:"limit"`
}

// libraryResponse is the API representation of a media library.
type libraryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CollectionType string `json:"collection_type,omitempty"`
}

// listLibrariesResponse is returned by GET /api/v1/libraries.
type listLibrariesResponse struct {
	Items []libraryResponse `json:"items"`
	Count int               `json:"count"`
}

// serverInfoResponse describes the media server a connection test reached.
type serverInfoResponse struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ID              string `json:"id,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty"`
}

// testResponse is returned by GET /api/v1/test.
type testResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Server  *serverInfoResponse `json:"server,omitempty"`
}

// statusResponse is returned by GET /api/v1/status.
type statusResponse struct {
	Version        string `json:"version"`
	EmbyConfigured bool   `json:"emby_configured"`
	Refreshing     bool   `json:"refreshing"`
	HistoryCount   int    `json:"history_count"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// webhookRequest is the optional body accepted by POST /api/v1/webhook/{source}.
type webhookRequest struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}
