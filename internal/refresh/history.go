package refresh

import "sync"

// DefaultHistorySize is the outcome capacity used when none is configured.
const DefaultHistorySize = 100

// History is a bounded in-memory ledger of refresh outcomes. When full,
// appending evicts the oldest entry. Safe for concurrent use.
type History struct {
	mu      sync.Mutex
	cap     int
	entries []Outcome
}

// NewHistory creates a History holding at most capacity outcomes.
// Non-positive capacities fall back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{cap: capacity}
}

// Append records an outcome, evicting the oldest entries beyond capacity.
func (h *History) Append(o Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, o)
	if len(h.entries) > h.cap {
		h.entries = h.entries[len(h.entries)-h.cap:]
	}
}

// Recent returns up to limit outcomes, most recent first. A non-positive
// limit returns everything retained.
func (h *History) Recent(limit int) []Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}
	out := make([]Outcome, limit)
	for i := 0; i < limit; i++ {
		out[i] = h.entries[len(h.entries)-1-i]
	}
	return out
}

// Len returns the number of retained outcomes.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
