package nominatim_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/adapters/out/nominatim"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
)

func TestGeocoder_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Khreschatyk 1, Kyiv", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"50.4501","lon":"30.5234"}]`))
	}))
	defer srv.Close()

	geocoder := nominatim.NewGeocoder(srv.URL)

	point, err := geocoder.Geocode(t.Context(), "Khreschatyk 1, Kyiv")
	require.NoError(t, err)
	assert.InDelta(t, 50.4501, point.Latitude(), 1e-9)
	assert.InDelta(t, 30.5234, point.Longitude(), 1e-9)
}

func TestGeocoder_Geocode_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	geocoder := nominatim.NewGeocoder(srv.URL)

	_, err := geocoder.Geocode(t.Context(), "nowhere at all")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGeocoder_Geocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	geocoder := nominatim.NewGeocoder(srv.URL)

	_, err := geocoder.Geocode(t.Context(), "Khreschatyk 1, Kyiv")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGeocoder_Geocode_EmptyAddress(t *testing.T) {
	geocoder := nominatim.NewGeocoder("http://127.0.0.1:1")

	_, err := geocoder.Geocode(t.Context(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGeocoder_ReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "50.4501", r.URL.Query().Get("lat"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Khreschatyk St, 1, Kyiv, Ukraine"}`))
	}))
	defer srv.Close()

	geocoder := nominatim.NewGeocoder(srv.URL)

	point, err := kernel.NewGeoPoint(50.4501, 30.5234)
	require.NoError(t, err)

	address, err := geocoder.ReverseGeocode(t.Context(), point)
	require.NoError(t, err)
	assert.Equal(t, "Khreschatyk St, 1, Kyiv, Ukraine", address)
}
