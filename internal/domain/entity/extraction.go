// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeWindow is a calendar interval with minute precision during which a
// reported condition is in effect.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Pin is a single-point location description in free text, not yet geocoded.
type Pin struct {
	Address     string       `json:"address"`
	TimeWindows []TimeWindow `json:"time_windows,omitempty"`
}

// StreetSection describes a closed road segment along a named street.
// From and To are either a numbered address or a cross-street name; they
// denote the two boundary points of the section.
type StreetSection struct {
	StreetName  string       `json:"street_name"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	TimeWindows []TimeWindow `json:"time_windows,omitempty"`
}

// LocationExtraction is the structured output of the external text-extraction
// collaborator for one message. It is immutable once stored and consumed
// exactly once to produce the message's feature collection.
type LocationExtraction struct {
	MessageID         uuid.UUID       `json:"message_id"`
	ResponsibleEntity string          `json:"responsible_entity"`
	Pins              []Pin           `json:"pins"`
	Streets           []StreetSection `json:"streets"`
}

// IsEmpty reports whether the extraction carries no locations at all.
func (e *LocationExtraction) IsEmpty() bool {
	return len(e.Pins) == 0 && len(e.Streets) == 0
}
