package refresh

import "time"

// Outcome records the result of a single refresh call within a campaign.
// A campaign covering all libraries produces one outcome with no library
// ID or name.
type Outcome struct {
	Success     bool      `json:"success"`
	LibraryID   string    `json:"library_id,omitempty"`
	LibraryName string    `json:"library_name,omitempty"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

func newOutcome(success bool, id, name, message string) Outcome {
	return Outcome{
		Success:     success,
		LibraryID:   id,
		LibraryName: name,
		Message:     message,
		Timestamp:   time.Now(),
	}
}

// tally counts succeeded and failed outcomes.
func tally(outcomes []Outcome) (int, int) {
	succeeded, failed := 0, 0
	for _, o := range outcomes {
		if o.Success {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
