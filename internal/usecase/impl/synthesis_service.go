package impl

import (
	"context"
	"log/slog"
	"time"

	"geosynth/config"
	"geosynth/internal/domain/entity"
	"geosynth/internal/geo"
	"geosynth/internal/infra/provider"
	"geosynth/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Endpoints closer than this are a point-like closure; no network lookup.
const degenerateEndpointMeters = 10.0

// Half length of the artificial north-south centerline for point-like
// closures, so buffering still yields a small valid polygon.
const artificialCenterlineHalfMeters = 3.0

type synthesisService struct {
	streets usecase.StreetGeometryUsecase
	closure config.ClosureConfig
	logger  *slog.Logger
}

// NewSynthesisService creates the closure geometry synthesizer.
func NewSynthesisService(streets usecase.StreetGeometryUsecase, cfg *config.Config, logger *slog.Logger) usecase.SynthesisUsecase {
	return &synthesisService{
		streets: streets,
		closure: cfg.Closure,
		logger:  logger,
	}
}

// BuildFeatureCollection emits one Point feature per resolved pin and one
// buffered closure Polygon per street section with both endpoints resolved.
// Features with missing inputs are skipped with a warning; the collection
// may come back empty.
func (s *synthesisService) BuildFeatureCollection(ctx context.Context, extraction *entity.LocationExtraction, resolved map[string]entity.GeocodedPoint) (*geojson.FeatureCollection, error) {
	collection := geojson.NewFeatureCollection()

	for _, pin := range extraction.Pins {
		point, ok := resolved[pin.Address]
		if !ok {
			s.logger.Warn("pin unresolved, skipping feature", slog.String("address", pin.Address))

			continue
		}

		feature := geojson.NewFeature(point.Coordinates.Point())
		feature.Properties["kind"] = "pin"
		feature.Properties["source"] = pin.Address
		feature.Properties["formatted_address"] = point.FormattedAddress
		feature.Properties["time_windows"] = timeWindowProperties(pin.TimeWindows)
		collection.Append(feature)
	}

	for _, section := range extraction.Streets {
		fromPoint, okFrom := resolved[section.From]
		toPoint, okTo := resolved[section.To]
		if !okFrom || !okTo {
			s.logger.Warn("street section endpoints unresolved, skipping feature",
				slog.String("street", section.StreetName),
				slog.Bool("from_resolved", okFrom),
				slog.Bool("to_resolved", okTo),
			)

			continue
		}

		centerline := s.centerline(ctx, section.StreetName, fromPoint.Coordinates.Point(), toPoint.Coordinates.Point())
		polygon, ok := geo.BufferLineString(centerline, s.halfWidth(section.StreetName))
		if !ok {
			s.logger.Warn("closure buffering failed, skipping feature",
				slog.String("street", section.StreetName),
			)

			continue
		}

		feature := geojson.NewFeature(polygon)
		feature.Properties["kind"] = "closure"
		feature.Properties["street"] = section.StreetName
		feature.Properties["from"] = section.From
		feature.Properties["to"] = section.To
		feature.Properties["time_windows"] = timeWindowProperties(section.TimeWindows)
		collection.Append(feature)
	}

	return collection, nil
}

// SelectIncidentGeometry chooses a geometry by auxiliary point count: none
// yields the center Point, one or two a MultiPoint, three or more the
// convex hull Polygon with a MultiPoint fallback for collinear input.
// Always total, never fails.
func (s *synthesisService) SelectIncidentGeometry(report *entity.IncidentReport) orb.Geometry {
	switch {
	case len(report.Auxiliary) == 0:
		return report.Center.Point()
	case len(report.Auxiliary) < 3:
		return auxiliaryMultiPoint(report)
	default:
		if hull, ok := geo.ConvexHull(auxiliaryMultiPoint(report)); ok {
			return hull
		}

		return auxiliaryMultiPoint(report)
	}
}

// centerline resolves the path between two endpoints. Near-coincident
// endpoints get a short artificial north-south line without touching the
// road network; otherwise a stitched path with a straight-line fallback.
func (s *synthesisService) centerline(ctx context.Context, street string, from, to orb.Point) orb.LineString {
	if geo.Distance(from, to) <= degenerateEndpointMeters {
		mid := geo.Midpoint(from, to)
		dLat := artificialCenterlineHalfMeters / geo.MetersPerDegreeLat()

		return orb.LineString{
			{mid.Lon(), mid.Lat() - dLat},
			{mid.Lon(), mid.Lat() + dLat},
		}
	}

	line, err := s.streets.Centerline(ctx, street, from, to)
	if err != nil {
		s.logger.Warn("centerline resolution failed, using straight line",
			slog.String("street", street),
			slog.Any("error", err),
		)

		return orb.LineString{from, to}
	}
	if len(line) < 2 {
		return orb.LineString{from, to}
	}

	return line
}

func (s *synthesisService) halfWidth(street string) float64 {
	switch provider.ClassifyStreet(street) {
	case provider.StreetClassBoulevard:
		return s.closure.BoulevardWidthMeters / 2
	case provider.StreetClassSquare:
		return s.closure.SquareWidthMeters / 2
	default:
		return s.closure.DefaultWidthMeters / 2
	}
}

func auxiliaryMultiPoint(report *entity.IncidentReport) orb.MultiPoint {
	points := make(orb.MultiPoint, 0, len(report.Auxiliary))
	for _, coords := range report.Auxiliary {
		points = append(points, coords.Point())
	}

	return points
}

func timeWindowProperties(windows []entity.TimeWindow) []map[string]string {
	properties := make([]map[string]string, 0, len(windows))
	for _, window := range windows {
		properties = append(properties, map[string]string{
			"start": window.Start.Format(time.RFC3339),
			"end":   window.End.Format(time.RFC3339),
		})
	}

	return properties
}
