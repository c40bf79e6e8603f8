package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHull_SquareDropsInteriorPoint(t *testing.T) {
	points := []orb.Point{
		{23.30, 42.68},
		{23.34, 42.68},
		{23.34, 42.72},
		{23.30, 42.72},
		{23.32, 42.70},
	}

	hull, ok := ConvexHull(points)
	require.True(t, ok)

	ring := hull[0]
	assert.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[len(ring)-1])
	assert.True(t, planar.PolygonContains(hull, orb.Point{23.32, 42.70}))
	assert.NotContains(t, ring[:len(ring)-1], orb.Point{23.32, 42.70})
}

func TestConvexHull_Triangle(t *testing.T) {
	points := []orb.Point{
		{23.30, 42.68},
		{23.34, 42.68},
		{23.32, 42.72},
	}

	hull, ok := ConvexHull(points)
	require.True(t, ok)
	assert.Len(t, hull[0], 4)
}

func TestConvexHull_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []orb.Point
	}{
		{name: "empty", points: nil},
		{name: "two points", points: []orb.Point{{23.30, 42.68}, {23.34, 42.68}}},
		{
			name: "duplicates collapse below three",
			points: []orb.Point{
				{23.30, 42.68}, {23.30, 42.68},
				{23.34, 42.68}, {23.34, 42.68},
			},
		},
		{
			name: "collinear",
			points: []orb.Point{
				{23.30, 42.68}, {23.32, 42.68}, {23.34, 42.68}, {23.36, 42.68},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hull, ok := ConvexHull(tt.points)
			assert.False(t, ok)
			assert.Nil(t, hull)
		})
	}
}
