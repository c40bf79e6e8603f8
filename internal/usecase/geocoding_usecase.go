package usecase

import (
	"context"
	"errors"
	"fmt"

	"geosynth/internal/domain/entity"
)

// Strategy selects how an extraction's addresses are geocoded.
type Strategy string

const (
	// StrategyBatch resolves every address through the forward geocoder.
	StrategyBatch Strategy = "batch"
	// StrategySplit resolves pins through the forward geocoder and street
	// endpoints through the intersection resolver.
	StrategySplit Strategy = "split"
)

// ErrUnknownStrategy is returned for strategy values outside the enum.
var ErrUnknownStrategy = errors.New("unknown geocoding strategy")

// ParseStrategy validates a configured strategy name. The enum is closed;
// misconfiguration fails at startup rather than at the first extraction.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case StrategyBatch:
		return StrategyBatch, nil
	case StrategySplit:
		return StrategySplit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, value)
	}
}

// IntersectionKey builds the result map key under which a street crossing
// is recorded.
func IntersectionKey(streetA, streetB string) string {
	return streetA + " & " + streetB
}

// GeocodingUsecase resolves the textual locations of an extraction to
// coordinates. The result maps address text (and intersection keys) to
// geocoded points; unresolvable entries are omitted, never fatal.
type GeocodingUsecase interface {
	ResolveExtraction(ctx context.Context, extraction *entity.LocationExtraction) (map[string]entity.GeocodedPoint, error)
}
