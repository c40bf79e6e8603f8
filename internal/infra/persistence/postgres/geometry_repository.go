package postgres

import (
	"context"
	"encoding/json"

	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/repository"
	"geosynth/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// geometryRepository implements the repository.GeometryRepository interface.
type geometryRepository struct {
	db *gorm.DB
}

// NewGeometryRepository is the constructor for geometryRepository.
func NewGeometryRepository(db *gorm.DB) repository.GeometryRepository {
	return &geometryRepository{
		db: db,
	}
}

// SaveCollection persists a feature collection exactly once. A second save
// for the same message reports ErrGeometryExists.
func (repo *geometryRepository) SaveCollection(ctx context.Context, geometry *entity.MessageGeometry) error {
	geometryM, err := fromGeometryDomain(geometry)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(geometryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrGeometryExists
		}

		return errors.Wrap(err, "failed to save feature collection")
	}

	geometry.CreatedAt = geometryM.CreatedAt

	return nil
}

// FindByMessage retrieves the feature collection of a message.
func (repo *geometryRepository) FindByMessage(ctx context.Context, messageID uuid.UUID) (*entity.MessageGeometry, error) {
	var geometryM model.MessageGeometryModel

	if err := repo.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		First(&geometryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGeometryNotFound
		}

		return nil, errors.Wrap(err, "failed to find geometry by message")
	}

	return toGeometryDomain(&geometryM)
}

// FindUnmatched returns up to limit collections not yet seen by the matcher.
func (repo *geometryRepository) FindUnmatched(ctx context.Context, limit int) ([]*entity.MessageGeometry, error) {
	var geometryModels []*model.MessageGeometryModel

	query := repo.db.WithContext(ctx).
		Where("matched = ?", false).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&geometryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find unmatched geometries")
	}

	geometries := make([]*entity.MessageGeometry, 0, len(geometryModels))
	for _, geometryM := range geometryModels {
		geometry, err := toGeometryDomain(geometryM)
		if err != nil {
			return nil, err
		}
		geometries = append(geometries, geometry)
	}

	return geometries, nil
}

// MarkMatched records that the matcher has processed a message.
func (repo *geometryRepository) MarkMatched(ctx context.Context, messageID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MessageGeometryModel{}).
		Where("message_id = ?", messageID).
		Update("matched", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark geometry matched")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGeometryNotFound
	}

	return nil
}

// toGeometryDomain converts a GORM MessageGeometryModel to a domain MessageGeometry entity.
func toGeometryDomain(data *model.MessageGeometryModel) (*entity.MessageGeometry, error) {
	if data == nil {
		return nil, nil
	}

	collection, err := geojson.UnmarshalFeatureCollection(data.Collection)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal feature collection")
	}

	return &entity.MessageGeometry{
		MessageID:  data.MessageID,
		Collection: collection,
		Matched:    data.Matched,
		CreatedAt:  data.CreatedAt,
	}, nil
}

// fromGeometryDomain converts a domain MessageGeometry entity to a GORM MessageGeometryModel.
func fromGeometryDomain(data *entity.MessageGeometry) (*model.MessageGeometryModel, error) {
	if data == nil {
		return nil, nil
	}

	collection, err := json.Marshal(data.Collection)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal feature collection")
	}

	return &model.MessageGeometryModel{
		MessageID:  data.MessageID,
		Collection: collection,
		Matched:    data.Matched,
		CreatedAt:  data.CreatedAt,
	}, nil
}
