package geo

import (
	"sort"

	"github.com/paulmach/orb"
)

// ConvexHull computes the convex hull of the given points using Andrew's
// monotone chain. It fails (ok=false) for fewer than three distinct points
// or fully collinear input; callers fall back to a MultiPoint in that case.
func ConvexHull(points []orb.Point) (orb.Polygon, bool) {
	unique := dedupePoints(points)
	if len(unique) < 3 {
		return nil, false
	}

	sort.Slice(unique, func(i, j int) bool {
		if unique[i].Lon() != unique[j].Lon() {
			return unique[i].Lon() < unique[j].Lon()
		}

		return unique[i].Lat() < unique[j].Lat()
	})

	var lower []orb.Point
	for _, p := range unique {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []orb.Point
	for i := len(unique) - 1; i >= 0; i-- {
		p := unique[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return nil, false
	}

	ring := make(orb.Ring, 0, len(hull)+1)
	ring = append(ring, hull...)
	ring = append(ring, hull[0])

	return orb.Polygon{ring}, true
}

// cross returns the z component of (b-a) x (c-a); positive for a left turn.
func cross(a, b, c orb.Point) float64 {
	return (b.Lon()-a.Lon())*(c.Lat()-a.Lat()) - (b.Lat()-a.Lat())*(c.Lon()-a.Lon())
}

func dedupePoints(points []orb.Point) []orb.Point {
	seen := make(map[orb.Point]struct{}, len(points))
	unique := make([]orb.Point, 0, len(points))

	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}

	return unique
}
