package entity

import "github.com/paulmach/orb"

// LatLng is a geographic coordinate pair in WGS-84 degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point converts the coordinate to an orb.Point (lng, lat order).
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// FromPoint builds a LatLng from an orb.Point.
func FromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// GeocodedPoint is the resolution of one Pin or one StreetSection endpoint.
// Coordinates are guaranteed to lie within the configured service area;
// out-of-area results are discarded by the adapters, never returned.
type GeocodedPoint struct {
	OriginalText     string `json:"original_text"`
	FormattedAddress string `json:"formatted_address"`
	Coordinates      LatLng `json:"coordinates"`
}
