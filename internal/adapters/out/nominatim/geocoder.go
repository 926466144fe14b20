// Package nominatim implements the Geocoder port against the OSM Nominatim
// HTTP API. Nominatim's usage policy requires a descriptive User-Agent, so
// the client always sends one.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "crm-logistics/1.0"
	requestTimeout = 5 * time.Second
)

// Geocoder resolves addresses through Nominatim's search and reverse
// endpoints. Results are not cached: callers treat geocoding as best effort
// and store resolved coordinates themselves.
type Geocoder struct {
	baseURL string
	client  *http.Client
}

// NewGeocoder creates a Nominatim geocoder. An empty baseURL selects the
// public nominatim.openstreetmap.org instance.
func NewGeocoder(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Geocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text address to coordinates. Returns
// errs.ObjectNotFoundError when Nominatim has no match, which callers treat
// differently from transport failures.
func (g *Geocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	if address == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []searchResult
	if err := g.get(ctx, "/search", query, &results); err != nil {
		return kernel.GeoPoint{}, err
	}
	if len(results) == 0 {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("address", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("lat", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("lon", err)
	}

	return kernel.NewGeoPoint(lat, lon)
}

// ReverseGeocode resolves coordinates to the nearest display address.
func (g *Geocoder) ReverseGeocode(ctx context.Context, point kernel.GeoPoint) (string, error) {
	if err := point.Validate(); err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(point.Latitude(), 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(point.Longitude(), 'f', -1, 64))
	query.Set("format", "json")

	var result reverseResult
	if err := g.get(ctx, "/reverse", query, &result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", errs.NewObjectNotFoundError("point", point.String())
	}

	return result.DisplayName, nil
}

func (g *Geocoder) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ ports.Geocoder = (*Geocoder)(nil)
