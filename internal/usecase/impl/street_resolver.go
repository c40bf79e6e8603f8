package impl

import (
	"context"
	"log/slog"
	"math"

	"geosynth/config"
	"geosynth/internal/domain/entity"
	"geosynth/internal/geo"
	"geosynth/internal/infra/provider"
	"geosynth/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type streetResolver struct {
	network   provider.RoadNetwork
	reference orb.Point
	closure   config.ClosureConfig
	logger    *slog.Logger
}

// NewStreetResolver creates the street geometry resolver working from raw
// road network segments. It doubles as an IntersectionResolver for the
// split geocoding strategy's network slot.
func NewStreetResolver(network provider.RoadNetwork, cfg *config.Config, logger *slog.Logger) usecase.StreetGeometryUsecase {
	return &streetResolver{
		network:   network,
		reference: orb.Point{cfg.ServiceArea.RefLng, cfg.ServiceArea.RefLat},
		closure:   cfg.Closure,
		logger:    logger,
	}
}

// ResolveIntersection locates the crossing of two streets, trying exact
// segment intersection first, then disambiguation by the reference point,
// then the buffered approximation, then the closest vertex pair. Provider
// failures and exhausted fallbacks both resolve to no result.
func (s *streetResolver) ResolveIntersection(ctx context.Context, streetA, streetB string) (*entity.GeocodedPoint, error) {
	segmentsA, okA := s.fetchSegments(ctx, streetA)
	segmentsB, okB := s.fetchSegments(ctx, streetB)
	if !okA || !okB {
		return nil, nil
	}

	var crossings []orb.Point
	for _, segA := range segmentsA {
		for _, segB := range segmentsB {
			crossings = append(crossings, geo.LineIntersections(segA, segB)...)
		}
	}

	var point orb.Point
	var found bool
	switch {
	case len(crossings) == 1:
		point, found = crossings[0], true
	case len(crossings) > 1:
		point, found = s.closestToReference(crossings), true
	default:
		point, found = s.bufferedApproximation(segmentsA, segmentsB)
		if !found {
			point, found = s.closestPairFallback(segmentsA, segmentsB)
		}
	}

	if !found {
		s.logger.Info("no plausible crossing between streets",
			slog.String("street_a", streetA),
			slog.String("street_b", streetB),
		)

		return nil, nil
	}

	crossing := usecase.IntersectionKey(streetA, streetB)

	return &entity.GeocodedPoint{
		OriginalText:     crossing,
		FormattedAddress: crossing,
		Coordinates:      entity.FromPoint(point),
	}, nil
}

// Centerline stitches the raw segments of one street into a continuous
// polyline from one endpoint to the other. It never fails: with no usable
// segments the result degrades to the straight line between the endpoints.
func (s *streetResolver) Centerline(ctx context.Context, street string, from, to orb.Point) (orb.LineString, error) {
	segments, ok := s.fetchSegments(ctx, street)
	if !ok {
		return orb.LineString{from, to}, nil
	}

	return s.stitch(segments, from, to), nil
}

func (s *streetResolver) fetchSegments(ctx context.Context, street string) ([]orb.LineString, bool) {
	segments, err := s.network.FetchRoadSegments(ctx, street)
	if err != nil {
		s.logger.Warn("road network lookup failed",
			slog.String("street", street),
			slog.Any("error", err),
		)

		return nil, false
	}
	if len(segments) == 0 {
		s.logger.Info("no road segments found for street", slog.String("street", street))

		return nil, false
	}

	return segments, true
}

// closestToReference disambiguates multiple crossings; real streets can
// cross more than once and the one nearest the city center wins.
func (s *streetResolver) closestToReference(crossings []orb.Point) orb.Point {
	best := crossings[0]
	bestDist := geo.Distance(best, s.reference)

	for _, p := range crossings[1:] {
		if d := geo.Distance(p, s.reference); d < bestDist {
			best = p
			bestDist = d
		}
	}

	return best
}

// bufferedApproximation buffers both street geometries by the configured
// tolerance and averages the vertices of one buffer that fall inside the
// other, approximating the overlap center.
func (s *streetResolver) bufferedApproximation(segmentsA, segmentsB []orb.LineString) (orb.Point, bool) {
	buffersA := bufferSegments(segmentsA, s.closure.BufferToleranceMeters)
	buffersB := bufferSegments(segmentsB, s.closure.BufferToleranceMeters)

	var contained []orb.Point
	contained = append(contained, containedVertices(buffersA, buffersB)...)
	contained = append(contained, containedVertices(buffersB, buffersA)...)
	if len(contained) == 0 {
		return orb.Point{}, false
	}

	return geo.Centroid(orb.MultiPoint(contained)), true
}

// closestPairFallback accepts the closest vertex pair across the two
// streets only when the gap is plausibly a shared corner.
func (s *streetResolver) closestPairFallback(segmentsA, segmentsB []orb.LineString) (orb.Point, bool) {
	bestDist := math.Inf(1)
	var bestA, bestB orb.Point

	for _, segA := range segmentsA {
		for _, segB := range segmentsB {
			pa, pb, d := geo.ClosestVertexPair(segA, segB)
			if d < bestDist {
				bestDist = d
				bestA, bestB = pa, pb
			}
		}
	}

	if bestDist > s.closure.MaxGapMeters {
		return orb.Point{}, false
	}

	return geo.Midpoint(bestA, bestB), true
}

// stitch greedily appends the nearest unused segment to the path tip,
// flipping segment orientation when its far end is the closer one. The
// segment budget bounds work on disconnected or malformed data.
func (s *streetResolver) stitch(segments []orb.LineString, from, to orb.Point) orb.LineString {
	path := orb.LineString{from}
	tip := from
	used := make([]bool, len(segments))

	for consumed := 0; consumed < s.closure.SegmentBudget; consumed++ {
		if geo.Distance(tip, to) <= s.closure.EndToleranceMeters {
			break
		}

		best := -1
		bestDist := math.Inf(1)
		for i, segment := range segments {
			if used[i] || len(segment) == 0 {
				continue
			}
			if d := geo.PointToLineString(tip, segment); d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best < 0 || bestDist > s.closure.MatchToleranceMeters {
			break
		}

		used[best] = true
		segment := segments[best]
		if geo.Distance(tip, segment[len(segment)-1]) < geo.Distance(tip, segment[0]) {
			segment = reverseSegment(segment)
		}
		path = append(path, segment...)
		tip = path[len(path)-1]
	}

	path = append(path, to)

	return path
}

func reverseSegment(segment orb.LineString) orb.LineString {
	reversed := make(orb.LineString, len(segment))
	for i, p := range segment {
		reversed[len(segment)-1-i] = p
	}

	return reversed
}

func bufferSegments(segments []orb.LineString, widthMeters float64) []orb.Polygon {
	buffers := make([]orb.Polygon, 0, len(segments))
	for _, segment := range segments {
		if polygon, ok := geo.BufferLineString(segment, widthMeters); ok {
			buffers = append(buffers, polygon)
		}
	}

	return buffers
}

func containedVertices(sources, targets []orb.Polygon) []orb.Point {
	var contained []orb.Point
	for _, source := range sources {
		for _, vertex := range source[0] {
			for _, target := range targets {
				if planar.PolygonContains(target, vertex) {
					contained = append(contained, vertex)

					break
				}
			}
		}
	}

	return contained
}
