// Package provider contains the external geodata clients: forward geocoding,
// intersection resolution through the routing API, and the road network
// source. All providers rate limit their upstream and cache resolved results.
package provider

import (
	"context"

	"geosynth/internal/domain/entity"

	"github.com/paulmach/orb"
)

// AddressResolver resolves free-form address text to a geocoded point.
// A nil point with nil error means the provider had no usable result
// inside the service area; callers omit the address rather than fail.
type AddressResolver interface {
	ResolveAddress(ctx context.Context, text string) (*entity.GeocodedPoint, error)
}

// IntersectionResolver resolves the crossing of two named streets.
type IntersectionResolver interface {
	ResolveIntersection(ctx context.Context, streetA, streetB string) (*entity.GeocodedPoint, error)
}

// RoadNetwork fetches the raw road segments carrying a street name.
type RoadNetwork interface {
	FetchRoadSegments(ctx context.Context, street string) ([]orb.LineString, error)
}

// Bounds is the service area bounding box in degrees.
type Bounds struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// Contains reports whether the point lies inside the box.
func (b Bounds) Contains(coords entity.LatLng) bool {
	return coords.Lat >= b.MinLat && coords.Lat <= b.MaxLat &&
		coords.Lng >= b.MinLng && coords.Lng <= b.MaxLng
}

// ContainsPoint reports whether the orb point lies inside the box.
func (b Bounds) ContainsPoint(p orb.Point) bool {
	return b.Contains(entity.FromPoint(p))
}
