package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Straight east-west centerline of the given length starting near the
// Sofia city center.
func straightLine(lengthMeters float64) orb.LineString {
	start := orb.Point{23.3219, 42.6977}
	dLng := lengthMeters / MetersPerDegreeLng(start.Lat())

	return orb.LineString{start, orb.Point{start.Lon() + dLng, start.Lat()}}
}

func TestBufferLineString_AreaMatchesLengthTimesWidth(t *testing.T) {
	tests := []struct {
		name      string
		length    float64
		halfWidth float64
	}{
		{name: "boulevard", length: 800, halfWidth: 10},
		{name: "avenue", length: 500, halfWidth: 7.5},
		{name: "residential", length: 120, halfWidth: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polygon, ok := BufferLineString(straightLine(tt.length), tt.halfWidth)
			require.True(t, ok)
			require.NotEmpty(t, polygon)

			expected := tt.length * 2 * tt.halfWidth
			assert.InEpsilon(t, expected, AreaSquareMeters(polygon), 0.02)
		})
	}
}

func TestBufferLineString_RingIsClosedWithBothSides(t *testing.T) {
	line := straightLine(200)
	polygon, ok := BufferLineString(line, 5)
	require.True(t, ok)

	ring := polygon[0]
	// Two offsets per vertex plus the closing point.
	assert.Len(t, ring, 2*len(line)+1)
	assert.Equal(t, ring[0], ring[len(ring)-1])
}

func TestBufferLineString_TooFewPoints(t *testing.T) {
	tests := []struct {
		name string
		line orb.LineString
	}{
		{name: "empty", line: orb.LineString{}},
		{name: "single point", line: orb.LineString{{23.32, 42.70}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polygon, ok := BufferLineString(tt.line, 5)
			assert.False(t, ok)
			assert.Nil(t, polygon)
		})
	}
}

func TestBufferLineString_DuplicateVerticesKeepHeading(t *testing.T) {
	start := orb.Point{23.3219, 42.6977}
	end := orb.Point{start.Lon() + 100/MetersPerDegreeLng(start.Lat()), start.Lat()}
	line := orb.LineString{start, start, end}

	polygon, ok := BufferLineString(line, 5)
	require.True(t, ok)
	assert.Greater(t, AreaSquareMeters(polygon), 0.0)
}

func TestCirclePolygon_VerticesOnRadius(t *testing.T) {
	center := orb.Point{23.3219, 42.6977}
	polygon := CirclePolygon(center, 500)

	require.NotEmpty(t, polygon)
	ring := polygon[0]
	assert.Equal(t, ring[0], ring[len(ring)-1])

	for _, p := range ring {
		assert.InDelta(t, 500, Distance(center, p), 5)
	}
}
