package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"geosynth/internal/geo"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrRoadNetworkUnavailable is returned when every configured mirror failed.
var ErrRoadNetworkUnavailable = errors.New("road network unavailable")

// Highway filters per street class. Boulevards only match major road types;
// plain streets widen the filter to residential fabric.
const (
	majorHighways = "trunk|primary|secondary|tertiary"
	minorHighways = "|residential|unclassified|living_street|pedestrian"
)

// Half length in meters of the synthetic segment emitted for node results.
const nodeSegmentHalfMeters = 5.0

// RoadNetworkConfig configures the Overpass-backed road network source.
type RoadNetworkConfig struct {
	Mirrors  []string
	Bounds   Bounds
	MinDelay time.Duration
	Timeout  time.Duration
}

// overpassNetwork fetches named road geometry from Overpass mirrors,
// trying each mirror in order until one answers.
type overpassNetwork struct {
	cfg        RoadNetworkConfig
	httpClient *http.Client
	throttle   *Throttle
	logger     *slog.Logger
}

// NewOverpassNetwork creates the RoadNetwork backed by Overpass mirrors.
func NewOverpassNetwork(cfg RoadNetworkConfig, logger *slog.Logger) RoadNetwork {
	return &overpassNetwork{
		cfg: cfg,
		// Per-request deadlines come from the per-mirror context.
		httpClient: &http.Client{},
		throttle:   NewThrottle(cfg.MinDelay),
		logger:     logger,
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type     string  `json:"type"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Geometry []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"geometry"`
}

func (o *overpassNetwork) FetchRoadSegments(ctx context.Context, street string) ([]orb.LineString, error) {
	name := NormalizeStreetName(street)
	if name == "" {
		return nil, nil
	}

	query := o.buildQuery(name, ClassifyStreet(street))

	var lastErr error
	for _, mirror := range o.cfg.Mirrors {
		if err := o.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := o.fetchMirror(ctx, mirror, query)
		if err != nil {
			o.logger.Warn("overpass mirror failed",
				slog.String("mirror", mirror),
				slog.String("street", name),
				slog.Any("error", err),
			)
			lastErr = err

			continue
		}

		return o.toSegments(resp), nil
	}

	if lastErr == nil {
		return nil, errors.Wrap(ErrRoadNetworkUnavailable, "no mirrors configured")
	}

	return nil, errors.Wrap(ErrRoadNetworkUnavailable, lastErr.Error())
}

// buildQuery assembles the Overpass QL query matching ways (and named
// nodes) carrying the street name inside the service area bounding box.
func (o *overpassNetwork) buildQuery(name string, class StreetClass) string {
	highways := majorHighways
	if class != StreetClassBoulevard {
		highways += minorHighways
	}

	bbox := fmt.Sprintf("(%f,%f,%f,%f)",
		o.cfg.Bounds.MinLat, o.cfg.Bounds.MinLng, o.cfg.Bounds.MaxLat, o.cfg.Bounds.MaxLng)
	pattern := regexp.QuoteMeta(name)

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	fmt.Fprintf(&b, `way["name"~"%s",i]["highway"~"%s"]%s;`, pattern, highways, bbox)
	fmt.Fprintf(&b, `node["name"~"%s",i]%s;`, pattern, bbox)
	b.WriteString(");out geom;")

	return b.String()
}

func (o *overpassNetwork) fetchMirror(ctx context.Context, mirror, query string) (*overpassResponse, error) {
	timeout := o.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	mirrorCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body := url.Values{"data": {query}}.Encode()
	req, err := http.NewRequestWithContext(mirrorCtx, http.MethodPost, mirror, strings.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("overpass http status %d", httpResp.StatusCode)
	}

	var resp overpassResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errors.WithStack(err)
	}

	return &resp, nil
}

// toSegments converts Overpass elements to polylines. Way geometry maps
// directly; a bare node becomes a short north-south segment so downstream
// stitching and buffering treat squares like any other road fragment.
func (o *overpassNetwork) toSegments(resp *overpassResponse) []orb.LineString {
	segments := make([]orb.LineString, 0, len(resp.Elements))

	for _, element := range resp.Elements {
		switch element.Type {
		case "way":
			if len(element.Geometry) < 2 {
				continue
			}
			line := make(orb.LineString, 0, len(element.Geometry))
			for _, vertex := range element.Geometry {
				line = append(line, orb.Point{vertex.Lon, vertex.Lat})
			}
			segments = append(segments, line)
		case "node":
			dLat := nodeSegmentHalfMeters / geo.MetersPerDegreeLat()
			segments = append(segments, orb.LineString{
				{element.Lon, element.Lat - dLat},
				{element.Lon, element.Lat + dLat},
			})
		}
	}

	return segments
}
