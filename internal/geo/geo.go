// Package geo provides the geometric primitives used by geocoding synthesis
// and spatial matching: distances, line intersection, buffering, convex hull
// and circle tests, all on orb types.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Local flat-earth scale factors. A degree of latitude spans a near constant
// distance while a degree of longitude shrinks with the cosine of the
// latitude, so the two axes carry distinct factors.
const (
	metersPerDegreeLat        = 110574.0
	metersPerDegreeLngEquator = 111320.0
)

// MetersPerDegreeLat returns the north-south meters spanned by one degree.
func MetersPerDegreeLat() float64 {
	return metersPerDegreeLat
}

// MetersPerDegreeLng returns the east-west meters spanned by one degree of
// longitude at the given latitude.
func MetersPerDegreeLng(lat float64) float64 {
	return metersPerDegreeLngEquator * math.Cos(lat*math.Pi/180)
}

// Distance returns the great-circle distance between two points in meters.
func Distance(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}

// PointToSegment returns the distance in meters from p to the segment a-b,
// using a planar projection scaled at the segment's latitude.
func PointToSegment(p, a, b orb.Point) float64 {
	mLat := metersPerDegreeLat
	mLng := MetersPerDegreeLng(a.Lat())

	bx := (b.Lon() - a.Lon()) * mLng
	by := (b.Lat() - a.Lat()) * mLat
	px := (p.Lon() - a.Lon()) * mLng
	py := (p.Lat() - a.Lat()) * mLat

	segSq := bx*bx + by*by
	if segSq == 0 {
		return math.Hypot(px, py)
	}

	t := (px*bx + py*by) / segSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return math.Hypot(px-t*bx, py-t*by)
}

// PointToLineString returns the minimum distance in meters from p to the
// line. An empty line yields +Inf.
func PointToLineString(p orb.Point, line orb.LineString) float64 {
	if len(line) == 0 {
		return math.Inf(1)
	}
	if len(line) == 1 {
		return Distance(p, line[0])
	}

	minDist := math.Inf(1)
	for i := 0; i < len(line)-1; i++ {
		if d := PointToSegment(p, line[i], line[i+1]); d < minDist {
			minDist = d
		}
	}

	return minDist
}

// ClosestVertexPair returns the pair of vertices, one from each line, with
// the smallest separation, and that separation in meters.
func ClosestVertexPair(a, b orb.LineString) (orb.Point, orb.Point, float64) {
	var bestA, bestB orb.Point
	best := math.Inf(1)

	for _, pa := range a {
		for _, pb := range b {
			if d := Distance(pa, pb); d < best {
				best = d
				bestA = pa
				bestB = pb
			}
		}
	}

	return bestA, bestB, best
}

// Midpoint returns the arithmetic midpoint of two points.
func Midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a.Lon() + b.Lon()) / 2, (a.Lat() + b.Lat()) / 2}
}
