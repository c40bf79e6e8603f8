package repository

import (
	"context"

	"geosynth/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrGeometryNotFound is returned when no feature collection exists for a message.
	ErrGeometryNotFound = errors.New("message geometry not found")
	// ErrGeometryExists is returned when a feature collection was already persisted
	// for a message; collections are write-once.
	ErrGeometryExists = errors.New("message geometry already persisted")
)

// GeometryRepository persists finalized message feature collections.
type GeometryRepository interface {
	// SaveCollection persists a feature collection exactly once.
	SaveCollection(ctx context.Context, geometry *entity.MessageGeometry) error

	// FindByMessage retrieves the feature collection of a message.
	FindByMessage(ctx context.Context, messageID uuid.UUID) (*entity.MessageGeometry, error)

	// FindUnmatched returns up to limit collections not yet seen by the matcher.
	FindUnmatched(ctx context.Context, limit int) ([]*entity.MessageGeometry, error)

	// MarkMatched records that the matcher has processed a message.
	MarkMatched(ctx context.Context, messageID uuid.UUID) error
}
