// internal/api/v1/middleware.go
package v1

import "net/http"

// requireBus returns 503 when no event bus is wired, which means
// webhook-driven refreshes cannot be delivered anywhere.
func (s *Server) requireBus(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Bus == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "event bus is not configured")
			return
		}
		next(w, r)
	}
}
