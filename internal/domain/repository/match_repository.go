package repository

import (
	"context"

	"geosynth/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrMatchNotFound is returned when a notification match does not exist.
var ErrMatchNotFound = errors.New("notification match not found")

// MatchRepository persists notification matches. Records are append-only
// until marked notified.
type MatchRepository interface {
	// CreateMatches persists a batch of deduplicated matches from one run.
	CreateMatches(ctx context.Context, matches []*entity.NotificationMatch) error

	// FindUnnotified returns up to limit matches not yet handed to delivery.
	FindUnnotified(ctx context.Context, limit int) ([]*entity.NotificationMatch, error)

	// MarkNotified records that delivery accepted the given matches.
	MarkNotified(ctx context.Context, ids []uuid.UUID) error
}
