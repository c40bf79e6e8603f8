package postgres

import (
	"context"
	"time"

	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/repository"
	"geosynth/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// matchRepository implements the repository.MatchRepository interface.
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository is the constructor for matchRepository.
func NewMatchRepository(db *gorm.DB) repository.MatchRepository {
	return &matchRepository{
		db: db,
	}
}

// CreateMatches persists a batch of deduplicated matches from one run.
// Re-runs over the same message keep the existing row per (user, message).
func (repo *matchRepository) CreateMatches(ctx context.Context, matches []*entity.NotificationMatch) error {
	if len(matches) == 0 {
		return nil
	}

	matchModels := make([]*model.NotificationMatchModel, 0, len(matches))
	for _, match := range matches {
		matchModels = append(matchModels, fromMatchDomain(match))
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(matchModels).Error; err != nil {
		return errors.Wrap(err, "failed to create matches")
	}

	return nil
}

// FindUnnotified returns up to limit matches not yet handed to delivery.
func (repo *matchRepository) FindUnnotified(ctx context.Context, limit int) ([]*entity.NotificationMatch, error) {
	var matchModels []*model.NotificationMatchModel

	query := repo.db.WithContext(ctx).
		Where("notified_at IS NULL").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&matchModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find unnotified matches")
	}

	matches := make([]*entity.NotificationMatch, 0, len(matchModels))
	for _, matchM := range matchModels {
		matches = append(matches, toMatchDomain(matchM))
	}

	return matches, nil
}

// MarkNotified records that delivery accepted the given matches.
func (repo *matchRepository) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.NotificationMatchModel{}).
		Where("id IN ?", ids).
		Update("notified_at", time.Now())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark matches notified")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMatchNotFound
	}

	return nil
}

// toMatchDomain converts a GORM NotificationMatchModel to a domain NotificationMatch entity.
func toMatchDomain(data *model.NotificationMatchModel) *entity.NotificationMatch {
	if data == nil {
		return nil
	}

	return &entity.NotificationMatch{
		ID:             data.ID,
		MessageID:      data.MessageID,
		UserID:         data.UserID,
		ZoneID:         data.ZoneID,
		DistanceMeters: data.DistanceMeters,
		NotifiedAt:     data.NotifiedAt,
		CreatedAt:      data.CreatedAt,
	}
}

// fromMatchDomain converts a domain NotificationMatch entity to a GORM NotificationMatchModel.
func fromMatchDomain(data *entity.NotificationMatch) *model.NotificationMatchModel {
	if data == nil {
		return nil
	}

	return &model.NotificationMatchModel{
		ID:             data.ID,
		MessageID:      data.MessageID,
		UserID:         data.UserID,
		ZoneID:         data.ZoneID,
		DistanceMeters: data.DistanceMeters,
		NotifiedAt:     data.NotifiedAt,
		CreatedAt:      data.CreatedAt,
	}
}
