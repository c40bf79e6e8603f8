package entity

import (
	"time"

	"github.com/google/uuid"
)

// Interest zone radius bounds in meters. Radius values outside the range are
// clamped, never rejected.
const (
	MinZoneRadiusMeters = 100.0
	MaxZoneRadiusMeters = 1000.0
)

// InterestZone is a user-owned circular region. Messages whose geometry
// intersects the circle trigger a notification for the owner.
type InterestZone struct {
	ID           uuid.UUID `json:"id"`            // The unique identifier of the zone.
	UserID       uuid.UUID `json:"user_id"`       // The owning user; exactly one per zone.
	Center       LatLng    `json:"center"`        // The circle center.
	RadiusMeters float64   `json:"radius_meters"` // Always within [MinZoneRadiusMeters, MaxZoneRadiusMeters].
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClampZoneRadius forces a requested radius into the allowed range.
func ClampZoneRadius(radius float64) float64 {
	if radius < MinZoneRadiusMeters {
		return MinZoneRadiusMeters
	}
	if radius > MaxZoneRadiusMeters {
		return MaxZoneRadiusMeters
	}

	return radius
}
