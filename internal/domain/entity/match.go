package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationMatch records that a message's geometry fell inside one of a
// user's interest zones. Matches are deduplicated to at most one record per
// (UserID, MessageID) pair, keeping the smallest distance, and are
// append-only until marked notified.
type NotificationMatch struct {
	ID             uuid.UUID  `json:"id"`
	MessageID      uuid.UUID  `json:"message_id"`
	UserID         uuid.UUID  `json:"user_id"`
	ZoneID         uuid.UUID  `json:"zone_id"`
	DistanceMeters float64    `json:"distance_meters"`
	NotifiedAt     *time.Time `json:"notified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
