package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"geosynth/internal/domain/entity"

	"github.com/pkg/errors"
)

// RoutingConfig configures the directions-based intersection resolver.
type RoutingConfig struct {
	Endpoint string
	APIKey   string
	Locality string
	Bounds   Bounds
	MinDelay time.Duration
	Timeout  time.Duration
}

// routingResolver resolves street intersections by asking the directions
// API to route across the crossing and taking the first step endpoint.
// When no route exists, or the step endpoint falls outside the service
// area, the crossing text is forward geocoded instead.
type routingResolver struct {
	cfg        RoutingConfig
	httpClient *http.Client
	throttle   *Throttle
	cache      *Cache
	fallback   AddressResolver
	logger     *slog.Logger
}

// NewRoutingResolver creates an IntersectionResolver backed by the routing
// API with a forward geocoding fallback. The caller owns the cache and may
// clear it between test cases.
func NewRoutingResolver(cfg RoutingConfig, cache *Cache, fallback AddressResolver, logger *slog.Logger) IntersectionResolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &routingResolver{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		throttle:   NewThrottle(cfg.MinDelay),
		cache:      cache,
		fallback:   fallback,
		logger:     logger,
	}
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Steps []struct {
				EndLocation struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"end_location"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

func (r *routingResolver) ResolveIntersection(ctx context.Context, streetA, streetB string) (*entity.GeocodedPoint, error) {
	crossing := streetA + " & " + streetB
	cacheKey := NormalizeStreetName(streetA) + "&" + NormalizeStreetName(streetB)
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached, nil
	}

	if err := r.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := r.fetch(ctx, crossing)
	if err != nil {
		return nil, err
	}

	if point := extractStepEnd(resp, crossing); point != nil {
		if r.cfg.Bounds.Contains(point.Coordinates) {
			r.cache.Put(cacheKey, point)

			return point, nil
		}
		r.logger.Warn("routing step end outside service area, discarding",
			slog.String("crossing", crossing),
			slog.Float64("lat", point.Coordinates.Lat),
			slog.Float64("lng", point.Coordinates.Lng),
		)
	} else {
		r.logger.Info("routing found no crossing", slog.String("crossing", crossing))
	}

	// No usable route result; the crossing text goes through the forward
	// geocoder, which enforces the service area itself.
	point, err := r.fallback.ResolveAddress(ctx, crossing)
	if err != nil {
		return nil, err
	}
	r.cache.Put(cacheKey, point)

	return point, nil
}

func (r *routingResolver) fetch(ctx context.Context, crossing string) (*directionsResponse, error) {
	address := crossing + ", " + r.cfg.Locality

	params := url.Values{}
	params.Set("origin", address)
	params.Set("destination", address)
	params.Set("key", r.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	httpResp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrGeocodeUpstream, err.Error())
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrGeocodeUpstream, "directions http status %d", httpResp.StatusCode)
	}

	var resp directionsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errors.Wrap(ErrGeocodeUpstream, err.Error())
	}

	return &resp, nil
}

func extractStepEnd(resp *directionsResponse, crossing string) *entity.GeocodedPoint {
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 || len(resp.Routes[0].Legs[0].Steps) == 0 {
		return nil
	}

	location := resp.Routes[0].Legs[0].Steps[0].EndLocation

	return &entity.GeocodedPoint{
		OriginalText:     crossing,
		FormattedAddress: crossing,
		Coordinates:      entity.LatLng{Lat: location.Lat, Lng: location.Lng},
	}
}
