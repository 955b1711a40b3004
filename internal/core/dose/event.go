// Package dose holds the dosage event model and the normalization of raw
// store records into a clean timeline.
package dose

import (
	"time"
)

// Event is a single administered dose. Events are immutable once recorded
// and are identified by their timestamp alone: the source system carries no
// surrogate id, so two doses recorded at the exact same instant cannot be
// told apart for removal. Removal therefore takes the most recently added
// exact match.
type Event struct {
	Amount float64
	At     time.Time
}

// Raw is the wire shape of a dose record as the store delivers it. Amount is
// number-like rather than a number: the sheet endpoint may hand back JSON
// numbers or strings, and either may be malformed.
type Raw struct {
	Amount    any    `json:"amount"`
	Timestamp string `json:"timestamp"`
}

// NewRaw builds a well-formed raw record from a known-good amount and instant.
func NewRaw(amount float64, at time.Time) Raw {
	return Raw{
		Amount:    amount,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}
