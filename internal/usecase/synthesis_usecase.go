package usecase

import (
	"context"

	"geosynth/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SynthesisUsecase turns geocoded extraction results into GeoJSON features.
type SynthesisUsecase interface {
	// BuildFeatureCollection produces the closure geometry for an
	// extraction: point features for pins and buffered closure polygons
	// for street sections.
	BuildFeatureCollection(ctx context.Context, extraction *entity.LocationExtraction, resolved map[string]entity.GeocodedPoint) (*geojson.FeatureCollection, error)

	// SelectIncidentGeometry chooses the geometry for an incident report
	// based on how many auxiliary points accompany the center.
	SelectIncidentGeometry(report *entity.IncidentReport) orb.Geometry
}
