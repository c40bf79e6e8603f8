package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// MessageGeometry is the finalized feature collection synthesized for one
// message. It is persisted once and immutable afterwards; Matched flips to
// true after the notification matcher has processed it.
type MessageGeometry struct {
	MessageID  uuid.UUID                  `json:"message_id"`
	Collection *geojson.FeatureCollection `json:"collection"`
	Matched    bool                       `json:"matched"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// IncidentReport is a feed-sourced incident carrying a center coordinate and
// zero or more auxiliary customer coordinates, used instead of text
// extraction by some upstream feeds.
type IncidentReport struct {
	Center    LatLng   `json:"center"`
	Auxiliary []LatLng `json:"auxiliary,omitempty"`
}
