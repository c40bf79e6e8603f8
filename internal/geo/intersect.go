package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SegmentIntersection returns the point where segments p1-p2 and q1-q2 cross.
// Parallel and collinear segments report no intersection; overlap of
// collinear road fragments is handled by the buffered fallback upstream.
func SegmentIntersection(p1, p2, q1, q2 orb.Point) (orb.Point, bool) {
	rx := p2.Lon() - p1.Lon()
	ry := p2.Lat() - p1.Lat()
	sx := q2.Lon() - q1.Lon()
	sy := q2.Lat() - q1.Lat()

	denom := rx*sy - ry*sx
	if denom == 0 {
		return orb.Point{}, false
	}

	dx := q1.Lon() - p1.Lon()
	dy := q1.Lat() - p1.Lat()

	t := (dx*sy - dy*sx) / denom
	u := (dx*ry - dy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return orb.Point{}, false
	}

	return orb.Point{p1.Lon() + t*rx, p1.Lat() + t*ry}, true
}

// LineIntersections computes every crossing between two polylines by testing
// all segment pairs.
func LineIntersections(a, b orb.LineString) []orb.Point {
	var points []orb.Point

	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			if p, ok := SegmentIntersection(a[i], a[i+1], b[j], b[j+1]); ok {
				points = append(points, p)
			}
		}
	}

	return points
}

// Centroid returns a representative point for a geometry: the point itself,
// the vertex mean for multi-points and lines, and the area centroid for
// polygons.
func Centroid(g orb.Geometry) orb.Point {
	switch geom := g.(type) {
	case orb.Point:
		return geom
	case orb.MultiPoint:
		return vertexMean(geom)
	case orb.LineString:
		return vertexMean(orb.MultiPoint(geom))
	case orb.Polygon:
		center, _ := planar.CentroidArea(geom)

		return center
	default:
		center, _ := planar.CentroidArea(g)

		return center
	}
}

func vertexMean(points orb.MultiPoint) orb.Point {
	if len(points) == 0 {
		return orb.Point{}
	}

	var sumLng, sumLat float64
	for _, p := range points {
		sumLng += p.Lon()
		sumLat += p.Lat()
	}
	n := float64(len(points))

	return orb.Point{sumLng / n, sumLat / n}
}

// IntersectsCircle reports whether a geometry touches the circle around
// center with the given radius in meters. Points use exact distance, lines
// use minimum vertex-to-segment distance, polygons additionally test
// containment of the center.
func IntersectsCircle(g orb.Geometry, center orb.Point, radiusMeters float64) bool {
	switch geom := g.(type) {
	case orb.Point:
		return Distance(geom, center) <= radiusMeters
	case orb.MultiPoint:
		for _, p := range geom {
			if Distance(p, center) <= radiusMeters {
				return true
			}
		}

		return false
	case orb.LineString:
		return PointToLineString(center, geom) <= radiusMeters
	case orb.Polygon:
		if len(geom) == 0 {
			return false
		}
		if planar.PolygonContains(geom, center) {
			return true
		}

		return PointToLineString(center, orb.LineString(geom[0])) <= radiusMeters
	default:
		return false
	}
}
