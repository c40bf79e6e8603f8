package usecase

import (
	"context"

	"geosynth/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateZoneInput represents the input for creating an interest zone
type CreateZoneInput struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// UpdateZoneInput represents the input for updating an interest zone
type UpdateZoneInput struct {
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
}

// ZoneUsecase defines the interface for interest zone management
type ZoneUsecase interface {
	CreateZone(ctx context.Context, userID uuid.UUID, input *CreateZoneInput) (*entity.InterestZone, error)
	GetUserZones(ctx context.Context, userID uuid.UUID) ([]*entity.InterestZone, error)
	UpdateZone(ctx context.Context, userID, zoneID uuid.UUID, input *UpdateZoneInput) (*entity.InterestZone, error)
	DeleteZone(ctx context.Context, userID, zoneID uuid.UUID) error
}
