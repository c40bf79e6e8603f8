// Package service defines interfaces for outbound collaborators of the core.
package service

import "context"

// MatchEvent is the payload handed to the notification-delivery collaborator.
// Delivery needs nothing beyond the user, the message, and the distance.
type MatchEvent struct {
	MatchID        string  `json:"match_id"`
	MessageID      string  `json:"message_id"`
	UserID         string  `json:"user_id"`
	DistanceMeters float64 `json:"distance_meters"`
	RequestID      string  `json:"request_id,omitempty"`
}

// Notifier hands unique notification matches off to the external delivery
// collaborator. Implementations must not retry internally beyond their own
// call timeout; the matcher re-runs unnotified matches.
type Notifier interface {
	// PublishMatch delivers one match event.
	PublishMatch(ctx context.Context, event *MatchEvent) error

	// Close releases any held resources.
	Close() error
}
