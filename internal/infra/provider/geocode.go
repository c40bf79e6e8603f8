package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"geosynth/internal/domain/entity"

	"github.com/pkg/errors"
)

// Geocode API status values.
const (
	geocodeStatusOK          = "OK"
	geocodeStatusZeroResults = "ZERO_RESULTS"
)

// ErrGeocodeUpstream marks transient upstream failures of the geocoding
// provider; callers may retry the whole extraction later.
var ErrGeocodeUpstream = errors.New("geocoding upstream failure")

// GeocodeConfig configures the forward geocoder.
type GeocodeConfig struct {
	Endpoint string
	APIKey   string
	Locality string
	Bounds   Bounds
	MinDelay time.Duration
	Timeout  time.Duration
}

// forwardGeocoder resolves address text through a Google-style geocoding
// endpoint, constrained to the configured locality and service area.
type forwardGeocoder struct {
	cfg        GeocodeConfig
	httpClient *http.Client
	throttle   *Throttle
	cache      *Cache
	logger     *slog.Logger
}

// NewForwardGeocoder creates the AddressResolver backed by the geocoding API.
// The caller owns the cache and may clear it between test cases.
func NewForwardGeocoder(cfg GeocodeConfig, cache *Cache, logger *slog.Logger) AddressResolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &forwardGeocoder{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		throttle:   NewThrottle(cfg.MinDelay),
		cache:      cache,
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	AddressComponents []struct {
		LongName string   `json:"long_name"`
		Types    []string `json:"types"`
	} `json:"address_components"`
}

func (g *forwardGeocoder) ResolveAddress(ctx context.Context, text string) (*entity.GeocodedPoint, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(query)
	if cached, ok := g.cache.Get(cacheKey); ok {
		return cached, nil
	}

	if err := g.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := g.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	switch resp.Status {
	case geocodeStatusOK:
	case geocodeStatusZeroResults:
		g.logger.Warn("geocoder returned no results", slog.String("query", query))
		g.cache.Put(cacheKey, nil)

		return nil, nil
	default:
		return nil, errors.Wrapf(ErrGeocodeUpstream, "geocode status %s", resp.Status)
	}

	result := g.pickResult(resp.Results)
	if result == nil {
		g.cache.Put(cacheKey, nil)

		return nil, nil
	}

	coords := entity.LatLng{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng}
	if !g.cfg.Bounds.Contains(coords) {
		g.logger.Warn("geocoder result outside service area",
			slog.String("query", query),
			slog.Float64("lat", coords.Lat),
			slog.Float64("lng", coords.Lng),
		)
		g.cache.Put(cacheKey, nil)

		return nil, nil
	}

	point := &entity.GeocodedPoint{
		OriginalText:     text,
		FormattedAddress: result.FormattedAddress,
		Coordinates:      coords,
	}
	g.cache.Put(cacheKey, point)

	return point, nil
}

func (g *forwardGeocoder) fetch(ctx context.Context, query string) (*geocodeResponse, error) {
	params := url.Values{}
	params.Set("address", query+", "+g.cfg.Locality)
	params.Set("key", g.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	httpResp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrGeocodeUpstream, err.Error())
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrGeocodeUpstream, "geocode http status %d", httpResp.StatusCode)
	}

	var resp geocodeResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errors.Wrap(ErrGeocodeUpstream, err.Error())
	}

	return &resp, nil
}

// pickResult prefers the first result whose locality component matches the
// configured city; ambiguous street names otherwise resolve to namesakes in
// other towns.
func (g *forwardGeocoder) pickResult(results []geocodeResult) *geocodeResult {
	if len(results) == 0 {
		return nil
	}

	for i := range results {
		for _, component := range results[i].AddressComponents {
			if !strings.EqualFold(component.LongName, g.cfg.Locality) {
				continue
			}
			for _, typ := range component.Types {
				if typ == "locality" {
					return &results[i]
				}
			}
		}
	}

	return &results[0]
}
