// Package routing implements the RouteProvider port over road-network
// services. Two backends are supported: OpenRouteService when an API key is
// configured, plain OSRM otherwise. Every failure path degrades to a
// straight-line estimate so route planning never blocks on an upstream.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/ports"
)

const (
	defaultORSBaseURL  = "https://api.openrouteservice.org"
	defaultOSRMBaseURL = "https://router.project-osrm.org"
	requestTimeout     = 8 * time.Second

	// fallbackSpeedKmh is the assumed speed for straight-line estimates
	// when no road-network backend answered.
	fallbackSpeedKmh = 25.0
)

// Config selects the routing backend.
type Config struct {
	Enabled     bool
	ORSBaseURL  string
	ORSAPIKey   string
	OSRMBaseURL string
}

// Provider estimates routes between points. With routing disabled or an
// upstream failing it silently falls back to a straight-line estimate, so
// EstimateRoute only returns an error on invalid input.
type Provider struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewProvider creates a routing provider. Empty base URLs select the public
// instances.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	if cfg.ORSBaseURL == "" {
		cfg.ORSBaseURL = defaultORSBaseURL
	}
	if cfg.OSRMBaseURL == "" {
		cfg.OSRMBaseURL = defaultOSRMBaseURL
	}
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
		logger: logger.With("component", "routing"),
	}
}

// EstimateRoute computes the road route between two points for the given
// profile ("driving-car", "cycling-regular", ...).
func (p *Provider) EstimateRoute(
	ctx context.Context,
	from, to kernel.GeoPoint,
	profile string,
) (ports.RouteEstimate, error) {
	if err := from.Validate(); err != nil {
		return ports.RouteEstimate{}, err
	}
	if err := to.Validate(); err != nil {
		return ports.RouteEstimate{}, err
	}

	if !p.cfg.Enabled {
		return p.straightLine(from, to)
	}

	var estimate ports.RouteEstimate
	var err error
	if p.cfg.ORSAPIKey != "" {
		estimate, err = p.openRouteService(ctx, from, to, profile)
	} else {
		estimate, err = p.osrm(ctx, from, to, profile)
	}
	if err != nil {
		p.logger.Warn("road routing failed, using straight-line estimate", "error", err)
		return p.straightLine(from, to)
	}

	return estimate, nil
}

func (p *Provider) straightLine(from, to kernel.GeoPoint) (ports.RouteEstimate, error) {
	distanceKm, err := from.DistanceKm(to)
	if err != nil {
		return ports.RouteEstimate{}, err
	}

	hours := distanceKm / fallbackSpeedKmh
	return ports.RouteEstimate{
		DistanceKm: distanceKm,
		Duration:   time.Duration(hours * float64(time.Hour)),
		Geometry:   []kernel.GeoPoint{from, to},
	}, nil
}

type orsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

func (p *Provider) openRouteService(
	ctx context.Context,
	from, to kernel.GeoPoint,
	profile string,
) (ports.RouteEstimate, error) {
	body, err := json.Marshal(map[string]any{
		"coordinates": [][]float64{
			{from.Longitude(), from.Latitude()},
			{to.Longitude(), to.Latitude()},
		},
	})
	if err != nil {
		return ports.RouteEstimate{}, err
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", p.cfg.ORSBaseURL, profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.RouteEstimate{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", p.cfg.ORSAPIKey)

	var parsed orsResponse
	if err = p.do(req, &parsed); err != nil {
		return ports.RouteEstimate{}, err
	}
	if len(parsed.Features) == 0 {
		return ports.RouteEstimate{}, fmt.Errorf("openrouteservice: empty feature set")
	}

	feature := parsed.Features[0]
	geometry, err := lonLatPairs(feature.Geometry.Coordinates)
	if err != nil {
		return ports.RouteEstimate{}, err
	}

	return ports.RouteEstimate{
		DistanceKm: feature.Properties.Summary.Distance / 1000.0,
		Duration:   time.Duration(feature.Properties.Summary.Duration * float64(time.Second)),
		Geometry:   geometry,
	}, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

func (p *Provider) osrm(
	ctx context.Context,
	from, to kernel.GeoPoint,
	profile string,
) (ports.RouteEstimate, error) {
	coords := fmt.Sprintf("%s,%s;%s,%s",
		formatCoord(from.Longitude()), formatCoord(from.Latitude()),
		formatCoord(to.Longitude()), formatCoord(to.Latitude()))

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson",
		p.cfg.OSRMBaseURL, osrmProfile(profile), coords)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.RouteEstimate{}, err
	}

	var parsed osrmResponse
	if err = p.do(req, &parsed); err != nil {
		return ports.RouteEstimate{}, err
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return ports.RouteEstimate{}, fmt.Errorf("osrm: no route (code %q)", parsed.Code)
	}

	found := parsed.Routes[0]
	geometry, err := lonLatPairs(found.Geometry.Coordinates)
	if err != nil {
		return ports.RouteEstimate{}, err
	}

	return ports.RouteEstimate{
		DistanceKm: found.Distance / 1000.0,
		Duration:   time.Duration(found.Duration * float64(time.Second)),
		Geometry:   geometry,
	}, nil
}

func (p *Provider) do(req *http.Request, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("routing backend: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// osrmProfile maps ORS-style profile names onto OSRM's shorter ones.
func osrmProfile(profile string) string {
	if strings.HasPrefix(profile, "cycling") {
		return "cycling"
	}
	return "driving"
}

func lonLatPairs(coordinates [][]float64) ([]kernel.GeoPoint, error) {
	points := make([]kernel.GeoPoint, 0, len(coordinates))
	for _, pair := range coordinates {
		if len(pair) < 2 {
			return nil, fmt.Errorf("routing backend: malformed coordinate pair")
		}
		point, err := kernel.NewGeoPoint(pair[1], pair[0])
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

var _ ports.RouteProvider = (*Provider)(nil)
