package usecase

import (
	"context"

	"geosynth/internal/domain/entity"
)

// ExtractionUsecase orchestrates a single extraction event: geocode the
// locations, synthesize the feature collection, persist it for matching.
type ExtractionUsecase interface {
	ProcessExtraction(ctx context.Context, extraction *entity.LocationExtraction) error
}
