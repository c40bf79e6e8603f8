package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"geosynth/config"
	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/repository"
	"geosynth/internal/domain/service"
	"geosynth/internal/geo"
	"geosynth/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type matcherService struct {
	zoneRepo     repository.ZoneRepository
	geometryRepo repository.GeometryRepository
	matchRepo    repository.MatchRepository
	notifier     service.Notifier
	batchSize    int
	logger       *slog.Logger
}

// NewMatcherService creates the spatial notification matcher.
func NewMatcherService(
	zoneRepo repository.ZoneRepository,
	geometryRepo repository.GeometryRepository,
	matchRepo repository.MatchRepository,
	notifier service.Notifier,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.MatcherUsecase {
	return &matcherService{
		zoneRepo:     zoneRepo,
		geometryRepo: geometryRepo,
		matchRepo:    matchRepo,
		notifier:     notifier,
		batchSize:    cfg.Matcher.BatchSize,
		logger:       logger,
	}
}

// RunOnce first retries matches whose hand-off failed on an earlier run,
// then matches a batch of unmatched message geometries against the current
// zone snapshot, persists the deduplicated matches, hands them to delivery
// and marks the geometries processed.
func (s *matcherService) RunOnce(ctx context.Context) (int, error) {
	if err := s.redeliverPending(ctx); err != nil {
		return 0, err
	}

	zones, err := s.zoneRepo.ListZones(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list interest zones: %w", err)
	}

	geometries, err := s.geometryRepo.FindUnmatched(ctx, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to find unmatched geometries: %w", err)
	}

	total := 0
	for _, geometry := range geometries {
		matches := s.matchZones(geometry, zones)
		if len(matches) > 0 {
			if err := s.matchRepo.CreateMatches(ctx, matches); err != nil {
				return total, fmt.Errorf("failed to create matches: %w", err)
			}
			s.deliver(ctx, matches)
			total += len(matches)
		}

		if err := s.geometryRepo.MarkMatched(ctx, geometry.MessageID); err != nil {
			return total, fmt.Errorf("failed to mark geometry matched: %w", err)
		}
	}

	return total, nil
}

// matchZones computes, per user, the single best match of one message
// geometry against all zones. A zone matches when any feature intersects
// its circle; the recorded distance is the minimum across intersecting
// features, exact for points and centroid-based for other geometries.
func (s *matcherService) matchZones(geometry *entity.MessageGeometry, zones []*entity.InterestZone) []*entity.NotificationMatch {
	best := make(map[uuid.UUID]*entity.NotificationMatch)

	for _, zone := range zones {
		center := zone.Center.Point()
		minDistance := math.Inf(1)
		matched := false

		for _, feature := range geometry.Collection.Features {
			if !geo.IntersectsCircle(feature.Geometry, center, zone.RadiusMeters) {
				continue
			}
			matched = true
			if d := featureDistance(feature.Geometry, center); d < minDistance {
				minDistance = d
			}
		}
		if !matched {
			continue
		}

		if existing, ok := best[zone.UserID]; !ok || minDistance < existing.DistanceMeters {
			best[zone.UserID] = &entity.NotificationMatch{
				ID:             uuid.New(),
				MessageID:      geometry.MessageID,
				UserID:         zone.UserID,
				ZoneID:         zone.ID,
				DistanceMeters: minDistance,
				CreatedAt:      time.Now(),
			}
		}
	}

	matches := make([]*entity.NotificationMatch, 0, len(best))
	for _, match := range best {
		matches = append(matches, match)
	}

	return matches
}

// redeliverPending hands matches left unnotified by earlier failed
// deliveries back to the notifier.
func (s *matcherService) redeliverPending(ctx context.Context) error {
	pending, err := s.matchRepo.FindUnnotified(ctx, s.batchSize)
	if err != nil {
		return fmt.Errorf("failed to find unnotified matches: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	s.logger.Info("redelivering unnotified matches", slog.Int("count", len(pending)))
	s.deliver(ctx, pending)

	return nil
}

// deliver hands matches to the notifier. Failed deliveries stay unnotified
// and are retried on a later run; successful ones are marked.
func (s *matcherService) deliver(ctx context.Context, matches []*entity.NotificationMatch) {
	notified := make([]uuid.UUID, 0, len(matches))
	for _, match := range matches {
		event := &service.MatchEvent{
			MatchID:        match.ID.String(),
			MessageID:      match.MessageID.String(),
			UserID:         match.UserID.String(),
			DistanceMeters: match.DistanceMeters,
		}
		if err := s.notifier.PublishMatch(ctx, event); err != nil {
			s.logger.Error("failed to publish match event",
				slog.String("match_id", match.ID.String()),
				slog.Any("error", err),
			)

			continue
		}
		notified = append(notified, match.ID)
	}

	if len(notified) == 0 {
		return
	}
	if err := s.matchRepo.MarkNotified(ctx, notified); err != nil {
		s.logger.Error("failed to mark matches notified", slog.Any("error", err))
	}
}

// featureDistance is exact for points and a centroid approximation for
// every other geometry.
func featureDistance(geometry orb.Geometry, center orb.Point) float64 {
	if point, ok := geometry.(orb.Point); ok {
		return geo.Distance(point, center)
	}

	return geo.Distance(geo.Centroid(geometry), center)
}
