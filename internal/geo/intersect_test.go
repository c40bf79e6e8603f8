package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentIntersection(t *testing.T) {
	t.Run("crossing", func(t *testing.T) {
		p, ok := SegmentIntersection(
			orb.Point{0, 0}, orb.Point{2, 2},
			orb.Point{0, 2}, orb.Point{2, 0},
		)
		require.True(t, ok)
		assert.InDelta(t, 1, p.Lon(), 1e-9)
		assert.InDelta(t, 1, p.Lat(), 1e-9)
	})

	t.Run("parallel", func(t *testing.T) {
		_, ok := SegmentIntersection(
			orb.Point{0, 0}, orb.Point{2, 0},
			orb.Point{0, 1}, orb.Point{2, 1},
		)
		assert.False(t, ok)
	})

	t.Run("collinear overlap reports none", func(t *testing.T) {
		_, ok := SegmentIntersection(
			orb.Point{0, 0}, orb.Point{2, 0},
			orb.Point{1, 0}, orb.Point{3, 0},
		)
		assert.False(t, ok)
	})

	t.Run("lines cross outside segments", func(t *testing.T) {
		_, ok := SegmentIntersection(
			orb.Point{0, 0}, orb.Point{1, 1},
			orb.Point{3, 0}, orb.Point{3, 5},
		)
		assert.False(t, ok)
	})
}

func TestLineIntersections(t *testing.T) {
	// A zigzag crossing a horizontal line twice.
	a := orb.LineString{{0, -1}, {1, 1}, {2, -1}}
	b := orb.LineString{{-1, 0}, {3, 0}}

	points := LineIntersections(a, b)
	require.Len(t, points, 2)
	assert.InDelta(t, 0.5, points[0].Lon(), 1e-9)
	assert.InDelta(t, 1.5, points[1].Lon(), 1e-9)
}

func TestCentroid(t *testing.T) {
	t.Run("point", func(t *testing.T) {
		p := orb.Point{23.32, 42.70}
		assert.Equal(t, p, Centroid(p))
	})

	t.Run("multipoint vertex mean", func(t *testing.T) {
		c := Centroid(orb.MultiPoint{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
		assert.InDelta(t, 1, c.Lon(), 1e-9)
		assert.InDelta(t, 1, c.Lat(), 1e-9)
	})

	t.Run("polygon area centroid", func(t *testing.T) {
		square := orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
		c := Centroid(square)
		assert.InDelta(t, 1, c.Lon(), 1e-9)
		assert.InDelta(t, 1, c.Lat(), 1e-9)
	})
}

func TestIntersectsCircle(t *testing.T) {
	center := orb.Point{23.3219, 42.6977}
	mLng := MetersPerDegreeLng(center.Lat())

	shifted := func(meters float64) orb.Point {
		return orb.Point{center.Lon() + meters/mLng, center.Lat()}
	}

	t.Run("point inside and outside", func(t *testing.T) {
		assert.True(t, IntersectsCircle(shifted(400), center, 500))
		assert.False(t, IntersectsCircle(shifted(600), center, 500))
	})

	t.Run("multipoint any member", func(t *testing.T) {
		mp := orb.MultiPoint{shifted(900), shifted(300)}
		assert.True(t, IntersectsCircle(mp, center, 500))
		assert.False(t, IntersectsCircle(orb.MultiPoint{shifted(900)}, center, 500))
	})

	t.Run("line passing near center", func(t *testing.T) {
		near := orb.LineString{
			{center.Lon() - 0.01, center.Lat() + 300/metersPerDegreeLat},
			{center.Lon() + 0.01, center.Lat() + 300/metersPerDegreeLat},
		}
		assert.True(t, IntersectsCircle(near, center, 500))

		far := orb.LineString{
			{center.Lon() - 0.01, center.Lat() + 800/metersPerDegreeLat},
			{center.Lon() + 0.01, center.Lat() + 800/metersPerDegreeLat},
		}
		assert.False(t, IntersectsCircle(far, center, 500))
	})

	t.Run("polygon containing center", func(t *testing.T) {
		big := CirclePolygon(center, 5000)
		assert.True(t, IntersectsCircle(big, center, 100))
	})

	t.Run("polygon ring within radius", func(t *testing.T) {
		offset := orb.Point{center.Lon() + 600/mLng, center.Lat()}
		poly := CirclePolygon(offset, 200)
		assert.True(t, IntersectsCircle(poly, center, 500))
		assert.False(t, IntersectsCircle(poly, center, 300))
	})
}

func TestPointToLineString(t *testing.T) {
	center := orb.Point{23.3219, 42.6977}

	t.Run("empty is infinite", func(t *testing.T) {
		assert.True(t, PointToLineString(center, orb.LineString{}) > 1e18)
	})

	t.Run("single point", func(t *testing.T) {
		d := PointToLineString(center, orb.LineString{{center.Lon(), center.Lat() + 100/metersPerDegreeLat}})
		assert.InDelta(t, 100, d, 1)
	})

	t.Run("projection onto segment interior", func(t *testing.T) {
		line := orb.LineString{
			{center.Lon() - 0.01, center.Lat() + 250/metersPerDegreeLat},
			{center.Lon() + 0.01, center.Lat() + 250/metersPerDegreeLat},
		}
		assert.InDelta(t, 250, PointToLineString(center, line), 2)
	})
}

func TestClosestVertexPair(t *testing.T) {
	a := orb.LineString{{23.30, 42.70}, {23.32, 42.70}}
	b := orb.LineString{{23.3201, 42.7001}, {23.35, 42.75}}

	pa, pb, d := ClosestVertexPair(a, b)
	assert.Equal(t, orb.Point{23.32, 42.70}, pa)
	assert.Equal(t, orb.Point{23.3201, 42.7001}, pb)
	assert.Less(t, d, 20.0)
}
