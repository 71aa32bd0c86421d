package geo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcontext/snapcontext/internal/geo"
)

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coord   geo.Coordinate
		wantErr bool
	}{
		{"valid", geo.Coordinate{Lat: 52.370, Lon: 4.895}, false},
		{"valid extremes", geo.Coordinate{Lat: 90, Lon: -180}, false},
		{"zero", geo.Coordinate{}, false},
		{"lat too high", geo.Coordinate{Lat: 90.001, Lon: 0}, true},
		{"lat too low", geo.Coordinate{Lat: -90.001, Lon: 0}, true},
		{"lon too high", geo.Coordinate{Lat: 0, Lon: 180.001}, true},
		{"lon too low", geo.Coordinate{Lat: 0, Lon: -180.001}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      geo.Coordinate
		wantM     float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         geo.Coordinate{Lat: 39.9042, Lon: 116.4074},
			b:         geo.Coordinate{Lat: 39.9042, Lon: 116.4074},
			wantM:     0,
			tolerance: 0.001,
		},
		{
			name:      "amsterdam to utrecht",
			a:         geo.Coordinate{Lat: 52.3676, Lon: 4.9041},
			b:         geo.Coordinate{Lat: 52.0907, Lon: 5.1214},
			wantM:     34300,
			tolerance: 500,
		},
		{
			name: "one degree latitude",
			a:    geo.Coordinate{Lat: 0, Lon: 0},
			b:    geo.Coordinate{Lat: 1, Lon: 0},
			// One degree of latitude is ~111.2 km.
			wantM:     111195,
			tolerance: 100,
		},
		{
			name:      "short hop ~15m",
			a:         geo.Coordinate{Lat: 39.904200, Lon: 116.407400},
			b:         geo.Coordinate{Lat: 39.904335, Lon: 116.407400},
			wantM:     15,
			tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geo.Distance(tt.a, tt.b)
			assert.InDelta(t, tt.wantM, got, tt.tolerance)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := geo.Coordinate{Lat: 52.3676, Lon: 4.9041}
	b := geo.Coordinate{Lat: 48.8566, Lon: 2.3522}
	require.Equal(t, geo.Distance(a, b), geo.Distance(b, a))
}

func TestElapsed(t *testing.T) {
	past := time.Now().Add(-2 * time.Second)
	assert.GreaterOrEqual(t, geo.Elapsed(past), 2*time.Second)
}
