package usecase

import (
	"context"

	"geosynth/internal/domain/entity"

	"github.com/paulmach/orb"
)

// StreetGeometryUsecase resolves street crossings and centerlines from the
// road network.
type StreetGeometryUsecase interface {
	// ResolveIntersection locates the crossing of two named streets from
	// their road geometry, falling back through progressively coarser
	// approximations. A nil point with nil error means no plausible
	// crossing exists.
	ResolveIntersection(ctx context.Context, streetA, streetB string) (*entity.GeocodedPoint, error)

	// Centerline stitches the road segments of a street into a single
	// polyline running from one endpoint to the other.
	Centerline(ctx context.Context, street string, from, to orb.Point) (orb.LineString, error)
}
