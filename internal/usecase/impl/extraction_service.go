package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/repository"
	"geosynth/internal/usecase"
)

type extractionService struct {
	geocoding    usecase.GeocodingUsecase
	synthesis    usecase.SynthesisUsecase
	geometryRepo repository.GeometryRepository
	logger       *slog.Logger
}

// NewExtractionService creates the orchestrator for extraction events.
func NewExtractionService(
	geocoding usecase.GeocodingUsecase,
	synthesis usecase.SynthesisUsecase,
	geometryRepo repository.GeometryRepository,
	logger *slog.Logger,
) usecase.ExtractionUsecase {
	return &extractionService{
		geocoding:    geocoding,
		synthesis:    synthesis,
		geometryRepo: geometryRepo,
		logger:       logger,
	}
}

// ProcessExtraction geocodes one extraction, synthesizes its feature
// collection and persists it. Messages yielding no geometry at all are
// finalized without a collection; nothing partial is ever persisted.
// Redelivered messages whose geometry is already stored are acknowledged
// without touching the providers again.
func (s *extractionService) ProcessExtraction(ctx context.Context, extraction *entity.LocationExtraction) error {
	if extraction.IsEmpty() {
		s.logger.Info("extraction carries no locations, finalizing without geometry",
			slog.String("message_id", extraction.MessageID.String()),
		)

		return nil
	}

	if _, err := s.geometryRepo.FindByMessage(ctx, extraction.MessageID); err == nil {
		s.logger.Info("message geometry already persisted, skipping re-geocoding",
			slog.String("message_id", extraction.MessageID.String()),
		)

		return nil
	} else if !errors.Is(err, repository.ErrGeometryNotFound) {
		return fmt.Errorf("failed to check existing geometry: %w", err)
	}

	resolved, err := s.geocoding.ResolveExtraction(ctx, extraction)
	if err != nil {
		return fmt.Errorf("failed to resolve extraction: %w", err)
	}

	collection, err := s.synthesis.BuildFeatureCollection(ctx, extraction, resolved)
	if err != nil {
		return fmt.Errorf("failed to build feature collection: %w", err)
	}

	if len(collection.Features) == 0 {
		s.logger.Warn("no feature resolved for message, finalizing without geometry",
			slog.String("message_id", extraction.MessageID.String()),
		)

		return nil
	}

	geometry := &entity.MessageGeometry{
		MessageID:  extraction.MessageID,
		Collection: collection,
		CreatedAt:  time.Now(),
	}
	if err := s.geometryRepo.SaveCollection(ctx, geometry); err != nil {
		if errors.Is(err, repository.ErrGeometryExists) {
			s.logger.Info("message geometry already persisted, skipping",
				slog.String("message_id", extraction.MessageID.String()),
			)

			return nil
		}

		return fmt.Errorf("failed to save feature collection: %w", err)
	}

	s.logger.Info("message geometry persisted",
		slog.String("message_id", extraction.MessageID.String()),
		slog.Int("feature_count", len(collection.Features)),
	)

	return nil
}
