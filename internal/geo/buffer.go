package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// circleSegments is the vertex count used when approximating circles.
const circleSegments = 64

// BufferLineString expands a centerline into a closure polygon of the given
// half width. Each vertex is offset along the unit normal of its local
// tangent (forward difference, backward for the last vertex); offsets are
// converted to degrees with the distinct per-axis scale factors at the
// line's latitude. The ring is the left offset sequence followed by the
// reversed right sequence, closed on the first point.
//
// Lines with fewer than two points cannot be buffered and report ok=false;
// callers omit the feature rather than emit degenerate geometry.
func BufferLineString(line orb.LineString, halfWidthMeters float64) (orb.Polygon, bool) {
	if len(line) < 2 {
		return nil, false
	}

	mLat := MetersPerDegreeLat()
	mLng := MetersPerDegreeLng(line[0].Lat())

	left := make([]orb.Point, 0, len(line))
	right := make([]orb.Point, 0, len(line))

	prevTx, prevTy := 1.0, 0.0
	for i := range line {
		var tx, ty float64
		if i < len(line)-1 {
			tx = (line[i+1].Lon() - line[i].Lon()) * mLng
			ty = (line[i+1].Lat() - line[i].Lat()) * mLat
		} else {
			tx = (line[i].Lon() - line[i-1].Lon()) * mLng
			ty = (line[i].Lat() - line[i-1].Lat()) * mLat
		}

		length := math.Hypot(tx, ty)
		if length == 0 {
			// Duplicate consecutive vertices keep the previous heading.
			tx, ty = prevTx, prevTy
		} else {
			tx /= length
			ty /= length
			prevTx, prevTy = tx, ty
		}

		// Rotate the tangent 90 degrees counter-clockwise.
		nx, ny := -ty, tx

		dLng := nx * halfWidthMeters / mLng
		dLat := ny * halfWidthMeters / mLat

		left = append(left, orb.Point{line[i].Lon() + dLng, line[i].Lat() + dLat})
		right = append(right, orb.Point{line[i].Lon() - dLng, line[i].Lat() - dLat})
	}

	ring := make(orb.Ring, 0, 2*len(line)+1)
	ring = append(ring, left...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, left[0])

	return orb.Polygon{ring}, true
}

// CirclePolygon approximates the circle around center with the given radius
// in meters as a closed polygon ring.
func CirclePolygon(center orb.Point, radiusMeters float64) orb.Polygon {
	mLat := MetersPerDegreeLat()
	mLng := MetersPerDegreeLng(center.Lat())

	ring := make(orb.Ring, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, orb.Point{
			center.Lon() + radiusMeters*math.Cos(angle)/mLng,
			center.Lat() + radiusMeters*math.Sin(angle)/mLat,
		})
	}
	ring = append(ring, ring[0])

	return orb.Polygon{ring}
}

// AreaSquareMeters returns the approximate planar area of a polygon using
// the local flat-earth scaling.
func AreaSquareMeters(polygon orb.Polygon) float64 {
	if len(polygon) == 0 || len(polygon[0]) < 4 {
		return 0
	}

	ring := polygon[0]
	mLat := MetersPerDegreeLat()
	mLng := MetersPerDegreeLng(ring[0].Lat())

	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		x1 := ring[i].Lon() * mLng
		y1 := ring[i].Lat() * mLat
		x2 := ring[i+1].Lon() * mLng
		y2 := ring[i+1].Lat() * mLat
		sum += x1*y2 - x2*y1
	}

	return math.Abs(sum) / 2
}
