// Package repository defines the persistence interfaces the use cases depend on.
package repository

import (
	"context"

	"geosynth/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrZoneNotFound is returned when an interest zone does not exist.
var ErrZoneNotFound = errors.New("interest zone not found")

// ZoneRepository persists user interest zones.
type ZoneRepository interface {
	// CreateZone persists a new interest zone.
	CreateZone(ctx context.Context, zone *entity.InterestZone) error

	// FindZoneByID retrieves a zone by its unique ID.
	FindZoneByID(ctx context.Context, id uuid.UUID) (*entity.InterestZone, error)

	// FindZonesByUser retrieves all zones owned by a user.
	FindZonesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InterestZone, error)

	// UpdateZone persists center/radius changes of an existing zone.
	UpdateZone(ctx context.Context, zone *entity.InterestZone) error

	// DeleteZone removes a zone by its ID.
	DeleteZone(ctx context.Context, id uuid.UUID) error

	// ListZones returns a snapshot of all zones for one matching run.
	ListZones(ctx context.Context) ([]*entity.InterestZone, error)
}
