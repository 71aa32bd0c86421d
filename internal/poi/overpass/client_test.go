package overpass_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/poi/overpass"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		query := r.PostForm.Get("data")
		assert.Contains(t, query, "cafe|restaurant")
		assert.Contains(t, query, "around:500")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"elements": [
				{"type": "node", "lat": 39.9052, "lon": 116.4074, "tags": {"name": "Far Cafe", "amenity": "cafe"}},
				{"type": "node", "lat": 39.9043, "lon": 116.4074, "tags": {"name": "Near Bistro", "amenity": "restaurant"}},
				{"type": "node", "lat": 39.9044, "lon": 116.4074, "tags": {"amenity": "cafe"}}
			]
		}`))
	}))
	defer server.Close()

	client := overpass.NewClient(overpass.ClientConfig{
		BaseURL: server.URL,
		Logger:  zerolog.Nop(),
	})

	items, err := client.Search(context.Background(), geo.Coordinate{Lat: 39.9042, Lon: 116.4074}, []string{"cafe", "restaurant"})
	require.NoError(t, err)
	require.Len(t, items, 2, "unnamed elements are dropped")

	// Closest-first ordering
	assert.Equal(t, "Near Bistro", items[0].Name)
	assert.Equal(t, "restaurant", items[0].Category)
	assert.Equal(t, "Far Cafe", items[1].Name)
	assert.Less(t, items[0].Distance, items[1].Distance)
}

func TestClient_Search_Limit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"elements": [
				{"type": "node", "lat": 52.371, "lon": 4.895, "tags": {"name": "A", "amenity": "cafe"}},
				{"type": "node", "lat": 52.372, "lon": 4.895, "tags": {"name": "B", "amenity": "cafe"}},
				{"type": "node", "lat": 52.373, "lon": 4.895, "tags": {"name": "C", "amenity": "cafe"}}
			]
		}`))
	}))
	defer server.Close()

	client := overpass.NewClient(overpass.ClientConfig{
		BaseURL: server.URL,
		Limit:   2,
		Logger:  zerolog.Nop(),
	})

	items, err := client.Search(context.Background(), geo.Coordinate{Lat: 52.37, Lon: 4.895}, []string{"cafe"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestClient_Search_NoKeywords(t *testing.T) {
	client := overpass.NewClient(overpass.ClientConfig{Logger: zerolog.Nop()})

	items, err := client.Search(context.Background(), geo.Coordinate{Lat: 52.37, Lon: 4.895}, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
