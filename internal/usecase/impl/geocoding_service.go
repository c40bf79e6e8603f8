package impl

import (
	"context"
	"log/slog"

	"geosynth/config"
	"geosynth/internal/domain/entity"
	"geosynth/internal/infra/provider"
	"geosynth/internal/usecase"
)

type geocodingService struct {
	strategy      usecase.Strategy
	addresses     provider.AddressResolver
	intersections provider.IntersectionResolver
	logger        *slog.Logger
}

// NewGeocodingService creates the geocoding router for the configured
// strategy. An unknown strategy value fails here, at startup.
func NewGeocodingService(
	cfg *config.Config,
	addresses provider.AddressResolver,
	intersections provider.IntersectionResolver,
	logger *slog.Logger,
) (usecase.GeocodingUsecase, error) {
	strategy, err := usecase.ParseStrategy(cfg.Geocoding.Strategy)
	if err != nil {
		return nil, err
	}

	return &geocodingService{
		strategy:      strategy,
		addresses:     addresses,
		intersections: intersections,
		logger:        logger,
	}, nil
}

// ResolveExtraction maps every pin address and street endpoint of the
// extraction to coordinates. Unresolvable entries are logged and omitted;
// callers detect incompleteness by map membership.
func (s *geocodingService) ResolveExtraction(ctx context.Context, extraction *entity.LocationExtraction) (map[string]entity.GeocodedPoint, error) {
	if s.strategy == usecase.StrategySplit {
		return s.resolveSplit(ctx, extraction), nil
	}

	return s.resolveBatch(ctx, extraction), nil
}

// resolveBatch forward geocodes the deduplicated union of all pin
// addresses and street endpoint strings in one pass.
func (s *geocodingService) resolveBatch(ctx context.Context, extraction *entity.LocationExtraction) map[string]entity.GeocodedPoint {
	resolved := make(map[string]entity.GeocodedPoint)

	for _, text := range batchTexts(extraction) {
		if point := s.resolveAddress(ctx, text); point != nil {
			resolved[text] = *point
		}
	}

	return resolved
}

// resolveSplit geocodes pins as plain addresses and street endpoints as
// intersections of the street with the endpoint cross-street. Endpoints
// the intersection resolver cannot place are retried through the forward
// geocoder; resolved endpoints are recorded under both the qualified
// intersection key and the bare endpoint key.
func (s *geocodingService) resolveSplit(ctx context.Context, extraction *entity.LocationExtraction) map[string]entity.GeocodedPoint {
	resolved := make(map[string]entity.GeocodedPoint)

	for _, pin := range extraction.Pins {
		if _, ok := resolved[pin.Address]; ok {
			continue
		}
		if point := s.resolveAddress(ctx, pin.Address); point != nil {
			resolved[pin.Address] = *point
		}
	}

	for _, street := range extraction.Streets {
		for _, endpoint := range []string{street.From, street.To} {
			key := usecase.IntersectionKey(street.StreetName, endpoint)
			if _, ok := resolved[key]; ok {
				continue
			}

			point, err := s.intersections.ResolveIntersection(ctx, street.StreetName, endpoint)
			if err != nil {
				s.logger.Warn("intersection resolution failed",
					slog.String("street", street.StreetName),
					slog.String("endpoint", endpoint),
					slog.Any("error", err),
				)
				point = nil
			}
			if point == nil {
				point = s.resolveAddress(ctx, endpoint)
			}
			if point == nil {
				s.logger.Warn("street endpoint unresolved, omitting",
					slog.String("street", street.StreetName),
					slog.String("endpoint", endpoint),
				)

				continue
			}

			resolved[key] = *point
			resolved[endpoint] = *point
		}
	}

	return resolved
}

func (s *geocodingService) resolveAddress(ctx context.Context, text string) *entity.GeocodedPoint {
	point, err := s.addresses.ResolveAddress(ctx, text)
	if err != nil {
		s.logger.Warn("address resolution failed",
			slog.String("address", text),
			slog.Any("error", err),
		)

		return nil
	}
	if point == nil {
		s.logger.Warn("address unresolved, omitting", slog.String("address", text))

		return nil
	}

	return point
}

func batchTexts(extraction *entity.LocationExtraction) []string {
	seen := make(map[string]struct{})
	texts := make([]string, 0, len(extraction.Pins)+2*len(extraction.Streets))

	add := func(text string) {
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		texts = append(texts, text)
	}

	for _, pin := range extraction.Pins {
		add(pin.Address)
	}
	for _, street := range extraction.Streets {
		add(street.From)
		add(street.To)
	}

	return texts
}
