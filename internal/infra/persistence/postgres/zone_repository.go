// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/repository"
	"geosynth/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// zoneRepository implements the repository.ZoneRepository interface.
type zoneRepository struct {
	db *gorm.DB
}

// NewZoneRepository is the constructor for zoneRepository.
func NewZoneRepository(db *gorm.DB) repository.ZoneRepository {
	return &zoneRepository{
		db: db,
	}
}

// CreateZone persists a new interest zone.
func (repo *zoneRepository) CreateZone(ctx context.Context, zone *entity.InterestZone) error {
	zoneM := fromZoneDomain(zone)

	if err := repo.db.WithContext(ctx).Create(zoneM).Error; err != nil {
		return errors.Wrap(err, "failed to create interest zone")
	}

	// Update the entity with generated values
	zone.ID = zoneM.ID
	zone.CreatedAt = zoneM.CreatedAt
	zone.UpdatedAt = zoneM.UpdatedAt

	return nil
}

// FindZoneByID retrieves a zone by its unique ID.
func (repo *zoneRepository) FindZoneByID(ctx context.Context, id uuid.UUID) (*entity.InterestZone, error) {
	var zoneM model.InterestZoneModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&zoneM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrZoneNotFound
		}

		return nil, errors.Wrap(err, "failed to find zone by ID")
	}

	return toZoneDomain(&zoneM), nil
}

// FindZonesByUser retrieves all zones owned by a user.
func (repo *zoneRepository) FindZonesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InterestZone, error) {
	var zoneModels []*model.InterestZoneModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&zoneModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find zones by user")
	}

	zones := make([]*entity.InterestZone, 0, len(zoneModels))
	for _, zoneM := range zoneModels {
		zones = append(zones, toZoneDomain(zoneM))
	}

	return zones, nil
}

// UpdateZone persists center/radius changes of an existing zone.
func (repo *zoneRepository) UpdateZone(ctx context.Context, zone *entity.InterestZone) error {
	result := repo.db.WithContext(ctx).
		Model(&model.InterestZoneModel{}).
		Where("id = ?", zone.ID).
		Updates(map[string]any{
			"latitude":      zone.Center.Lat,
			"longitude":     zone.Center.Lng,
			"radius_meters": zone.RadiusMeters,
			"updated_at":    zone.UpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update zone")
	}
	if result.RowsAffected == 0 {
		return repository.ErrZoneNotFound
	}

	return nil
}

// DeleteZone removes a zone by its ID.
func (repo *zoneRepository) DeleteZone(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.InterestZoneModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete zone")
	}
	if result.RowsAffected == 0 {
		return repository.ErrZoneNotFound
	}

	return nil
}

// ListZones returns a snapshot of all zones for one matching run.
func (repo *zoneRepository) ListZones(ctx context.Context) ([]*entity.InterestZone, error) {
	var zoneModels []*model.InterestZoneModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&zoneModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list zones")
	}

	zones := make([]*entity.InterestZone, 0, len(zoneModels))
	for _, zoneM := range zoneModels {
		zones = append(zones, toZoneDomain(zoneM))
	}

	return zones, nil
}

// toZoneDomain converts a GORM InterestZoneModel to a domain InterestZone entity.
func toZoneDomain(data *model.InterestZoneModel) *entity.InterestZone {
	if data == nil {
		return nil
	}

	return &entity.InterestZone{
		ID:           data.ID,
		UserID:       data.UserID,
		Center:       entity.LatLng{Lat: data.Latitude, Lng: data.Longitude},
		RadiusMeters: data.RadiusMeters,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromZoneDomain converts a domain InterestZone entity to a GORM InterestZoneModel.
func fromZoneDomain(data *entity.InterestZone) *model.InterestZoneModel {
	if data == nil {
		return nil
	}

	return &model.InterestZoneModel{
		ID:           data.ID,
		UserID:       data.UserID,
		Latitude:     data.Center.Lat,
		Longitude:    data.Center.Lng,
		RadiusMeters: data.RadiusMeters,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
