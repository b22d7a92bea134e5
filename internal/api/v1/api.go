// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Config holds API server configuration.
type Config struct {
	Version        string
	EmbyConfigured bool
}

// Server is the v1 API server.
type Server struct {
	deps    ServerDeps
	cfg     Config
	started time.Time
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return &Server{
		deps:    deps,
		cfg:     cfg,
		started: time.Now(),
	}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Refresh campaigns
	mux.HandleFunc("POST /api/v1/refresh", s.runRefresh)
	mux.HandleFunc("POST /api/v1/refresh/async", s.submitRefresh)
	mux.HandleFunc("GET /api/v1/refresh/history", s.listHistory)

	// Libraries
	mux.HandleFunc("GET /api/v1/libraries", s.listLibraries)
	mux.HandleFunc("GET /api/v1/libraries/{library}", s.getLibrary)

	// Webhooks for upstream pipeline tools
	mux.HandleFunc("POST /api/v1/webhook/{source}", s.requireBus(s.webhook))

	// System
	mux.HandleFunc("GET /api/v1/test", s.testConnection)
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("GET /api/v1/events", s.listEvents)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
