package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/geocode"
	"github.com/snapcontext/snapcontext/internal/geocode/nominatim"
)

func TestClient_ReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Ritan Park",
			"display_name": "Ritan Park, Guanghua Road, Chaoyang, Beijing, China",
			"category": "leisure",
			"type": "park",
			"address": {
				"road": "Guanghua Road",
				"suburb": "Chaoyang",
				"city": "Beijing",
				"state": "Beijing"
			}
		}`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL: server.URL,
		Logger:  zerolog.Nop(),
	})

	addr, err := client.ReverseGeocode(context.Background(), geo.Coordinate{Lat: 39.9042, Lon: 116.4074})
	require.NoError(t, err)
	require.NotNil(t, addr)

	assert.Equal(t, "Beijing", addr.Locality)
	assert.Equal(t, "Chaoyang", addr.SubLocality)
	assert.Equal(t, "Beijing", addr.AdministrativeArea)
	assert.Equal(t, "Guanghua Road", addr.Thoroughfare)
	assert.Equal(t, "Ritan Park", addr.Name)
	assert.Equal(t, "Ritan Park, Guanghua Road, Chaoyang, Beijing, China", addr.FormattedAddress)
	require.Len(t, addr.AreasOfInterest, 1)
	assert.Equal(t, "Ritan Park", addr.AreasOfInterest[0])
}

func TestClient_ReverseGeocode_RequestsReverseEndpoint(t *testing.T) {
	// The client appends only the query string to its base URL, so the
	// configured endpoint must carry the /reverse path itself. A server
	// that answers nowhere else catches a misconfigured base URL.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "somewhere", "address": {"city": "Beijing"}}`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL: server.URL + "/reverse",
		Logger:  zerolog.Nop(),
	})

	addr, err := client.ReverseGeocode(context.Background(), geo.Coordinate{Lat: 39.9042, Lon: 116.4074})
	require.NoError(t, err)
	require.NotNil(t, addr)
	assert.Equal(t, "Beijing", addr.Locality)
}

func TestClient_ReverseGeocode_TownFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"display_name": "Ouderkerk aan de Amstel, North Holland, Netherlands",
			"category": "place",
			"type": "town",
			"address": {
				"town": "Ouderkerk aan de Amstel",
				"state": "North Holland"
			}
		}`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL: server.URL,
		Logger:  zerolog.Nop(),
	})

	addr, err := client.ReverseGeocode(context.Background(), geo.Coordinate{Lat: 52.294, Lon: 4.906})
	require.NoError(t, err)

	assert.Equal(t, "Ouderkerk aan de Amstel", addr.Locality)
	assert.Empty(t, addr.AreasOfInterest)
}

func TestClient_ReverseGeocode_NoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL: server.URL,
		Logger:  zerolog.Nop(),
	})

	_, err := client.ReverseGeocode(context.Background(), geo.Coordinate{Lat: 0, Lon: 0})
	assert.ErrorIs(t, err, geocode.ErrNoResult)
}

func TestClient_ReverseGeocode_InvalidCoordinate(t *testing.T) {
	client := nominatim.NewClient(nominatim.ClientConfig{Logger: zerolog.Nop()})

	_, err := client.ReverseGeocode(context.Background(), geo.Coordinate{Lat: 91, Lon: 0})
	assert.ErrorIs(t, err, geocode.ErrProviderError)
}
