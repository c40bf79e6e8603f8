package impl

import (
	"context"
	"testing"

	"geosynth/config"
	"geosynth/internal/geo"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRoadNetwork serves raw segments from a fixed table keyed by the
// street text handed to FetchRoadSegments.
type fakeRoadNetwork struct {
	segments map[string][]orb.LineString
	err      error
}

func (f *fakeRoadNetwork) FetchRoadSegments(_ context.Context, street string) ([]orb.LineString, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.segments[street], nil
}

func resolverConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ServiceArea.RefLat = 42.6977
	cfg.ServiceArea.RefLng = 23.3219
	cfg.Closure.BufferToleranceMeters = 30
	cfg.Closure.MaxGapMeters = 300
	cfg.Closure.SegmentBudget = 10
	cfg.Closure.MatchToleranceMeters = 150
	cfg.Closure.EndToleranceMeters = 20

	return cfg
}

func TestStreetResolver_ResolveIntersection_SingleCrossing(t *testing.T) {
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{
		"ул. Оборище":  {{{23.3300, 42.6950}, {23.3350, 42.6950}}},
		"ул. Раковска": {{{23.3320, 42.6900}, {23.3320, 42.7000}}},
	}}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	point, err := resolver.ResolveIntersection(context.Background(), "ул. Оборище", "ул. Раковска")
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 23.3320, point.Coordinates.Lng, 1e-9)
	assert.InDelta(t, 42.6950, point.Coordinates.Lat, 1e-9)
	assert.Equal(t, "ул. Оборище & ул. Раковска", point.OriginalText)
}

func TestStreetResolver_ResolveIntersection_PicksCrossingNearReference(t *testing.T) {
	// The second street crosses the first twice; the crossing closer to
	// the reference point wins.
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{
		"ул. Оборище": {{{23.3250, 42.6950}, {23.3400, 42.6950}}},
		"ул. Раковска": {
			{{23.3300, 42.6900}, {23.3300, 42.7000}},
			{{23.3390, 42.6900}, {23.3390, 42.7000}},
		},
	}}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	point, err := resolver.ResolveIntersection(context.Background(), "ул. Оборище", "ул. Раковска")
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 23.3300, point.Coordinates.Lng, 1e-9)
}

func TestStreetResolver_ResolveIntersection_BufferedApproximation(t *testing.T) {
	// Parallel streets roughly 20 meters apart never cross exactly but
	// overlap once buffered by the 30 meter tolerance.
	separation := 20.0 / geo.MetersPerDegreeLat()
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{
		"ул. Аксаков":       {{{23.3300, 42.6950}, {23.3340, 42.6950}}},
		"ул. Славянска": {{{23.3290, 42.6950 + separation}, {23.3350, 42.6950 + separation}}},
	}}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	point, err := resolver.ResolveIntersection(context.Background(), "ул. Аксаков", "ул. Славянска")
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 42.6950, point.Coordinates.Lat, 60/geo.MetersPerDegreeLat())
	assert.InDelta(t, 23.3320, point.Coordinates.Lng, 1e-3)
}

func TestStreetResolver_ResolveIntersection_ClosestPairWithinGap(t *testing.T) {
	// Collinear fragments with a 100 meter longitudinal gap: no exact
	// crossing, no buffer overlap, but the gap is under the threshold.
	gap := 100.0 / geo.MetersPerDegreeLng(42.6950)
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{
		"ул. Шипка":   {{{23.3300, 42.6950}, {23.3310, 42.6950}}},
		"ул. Оборище": {{{23.3310 + gap, 42.6950}, {23.3320 + gap, 42.6950}}},
	}}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	point, err := resolver.ResolveIntersection(context.Background(), "ул. Шипка", "ул. Оборище")
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 23.3310+gap/2, point.Coordinates.Lng, 1e-6)
}

func TestStreetResolver_ResolveIntersection_BeyondMaxGap(t *testing.T) {
	gap := 500.0 / geo.MetersPerDegreeLng(42.6950)
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{
		"ул. Шипка":   {{{23.3300, 42.6950}, {23.3310, 42.6950}}},
		"ул. Оборище": {{{23.3310 + gap, 42.6950}, {23.3320 + gap, 42.6950}}},
	}}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	point, err := resolver.ResolveIntersection(context.Background(), "ул. Шипка", "ул. Оборище")
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestStreetResolver_ResolveIntersection_NetworkFailureIsNoResult(t *testing.T) {
	network := &fakeRoadNetwork{err: errors.New("all mirrors down")}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	point, err := resolver.ResolveIntersection(context.Background(), "ул. А", "ул. Б")
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestStreetResolver_Centerline_StitchesUnorderedSegments(t *testing.T) {
	from := orb.Point{23.3300, 42.6950}
	to := orb.Point{23.3340, 42.6950}
	// Second fragment is stored in reverse order and must be flipped.
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{
		"ул. Оборище": {
			{{23.3340, 42.6950}, {23.3320, 42.6950}},
			{{23.3300, 42.6950}, {23.3320, 42.6950}},
		},
	}}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	line, err := resolver.Centerline(context.Background(), "ул. Оборище", from, to)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(line), 2)

	assert.Equal(t, from, line[0])
	assert.Equal(t, to, line[len(line)-1])
	for i := 1; i < len(line); i++ {
		assert.GreaterOrEqual(t, line[i].Lon(), line[i-1].Lon())
	}
}

func TestStreetResolver_Centerline_NoNearbySegments(t *testing.T) {
	from := orb.Point{23.3300, 42.6950}
	to := orb.Point{23.3340, 42.6950}
	// The only fragment lies far beyond the matching tolerance.
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{
		"ул. Оборище": {{{23.3300, 42.7100}, {23.3340, 42.7100}}},
	}}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	line, err := resolver.Centerline(context.Background(), "ул. Оборище", from, to)
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{from, to}, line)
}

func TestStreetResolver_Centerline_NetworkFailureFallsBackToStraightLine(t *testing.T) {
	from := orb.Point{23.3300, 42.6950}
	to := orb.Point{23.3340, 42.6950}
	network := &fakeRoadNetwork{err: errors.New("all mirrors down")}
	resolver := NewStreetResolver(network, resolverConfig(), testLogger())

	line, err := resolver.Centerline(context.Background(), "ул. Оборище", from, to)
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{from, to}, line)
}

func TestStreetResolver_Centerline_RespectsSegmentBudget(t *testing.T) {
	from := orb.Point{23.3300, 42.6950}
	to := orb.Point{23.3400, 42.6950}

	cfg := resolverConfig()
	cfg.Closure.SegmentBudget = 2

	// A long chain of short fragments; the budget stops consumption early
	// and the path still terminates at the endpoint.
	var segments []orb.LineString
	for i := 0; i < 8; i++ {
		start := 23.3300 + float64(i)*0.00125
		segments = append(segments, orb.LineString{{start, 42.6950}, {start + 0.00125, 42.6950}})
	}
	network := &fakeRoadNetwork{segments: map[string][]orb.LineString{"ул. Оборище": segments}}
	resolver := NewStreetResolver(network, cfg, testLogger())

	line, err := resolver.Centerline(context.Background(), "ул. Оборище", from, to)
	require.NoError(t, err)

	// Budget of 2 segments: at most 1 + 2*2 + 1 points.
	assert.LessOrEqual(t, len(line), 6)
	assert.Equal(t, to, line[len(line)-1])
}
