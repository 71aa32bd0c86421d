// Package camctx assembles the display-ready geographic context for the
// camera: address, weather, nearby points of interest, altitude, coordinates
// and timestamp for the device's current position.
package camctx

import (
	"fmt"
	"time"

	"github.com/snapcontext/snapcontext/internal/geocode"
	"github.com/snapcontext/snapcontext/internal/location"
	"github.com/snapcontext/snapcontext/internal/poi"
	"github.com/snapcontext/snapcontext/internal/weather"
)

// Scene is the calling context. It biases POI keyword selection.
type Scene string

const (
	SceneWork   Scene = "work"
	SceneTravel Scene = "travel"
)

// ParseScene parses a scene string, defaulting to work when empty.
func ParseScene(s string) (Scene, error) {
	switch Scene(s) {
	case SceneWork, SceneTravel:
		return Scene(s), nil
	case "":
		return SceneWork, nil
	default:
		return "", fmt.Errorf("unknown scene %q", s)
	}
}

// Display holds the precomputed human-readable strings. TimeString is the
// only field rewritten after initial construction (on a cache-hit refresh).
type Display struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	WeatherString    string `json:"weatherStr"`
	TimeString       string `json:"timeStr"`
	AltitudeString   string `json:"altitudeStr"`
	CoordinateString string `json:"coordinateStr"`
}

// Raw holds the source data the display strings were built from. Timestamp
// is mutated in lock-step with Display.TimeString on a cache hit.
type Raw struct {
	Reading   location.Reading  `json:"reading"`
	Address   *geocode.Address  `json:"address,omitempty"`
	POIs      []poi.Item        `json:"pois"`
	Timestamp time.Time         `json:"timestamp"`
	Weather   *weather.Snapshot `json:"weather,omitempty"`
}

// Flags describe how the context was produced.
type Flags struct {
	// FromCache is true when the context is a refreshed copy of a cached
	// entry rather than a fresh fan-out result.
	FromCache bool `json:"fromCache"`

	// UsingMockWeather is fixed at orchestrator construction time.
	UsingMockWeather bool `json:"usingMockWeather"`

	// WeatherTimedOut is fixed at assembly time: true when the weather
	// branch failed or exceeded its deadline.
	WeatherTimedOut bool `json:"weatherTimedOut"`

	// Scene and Mode echo the request.
	Scene Scene         `json:"scene"`
	Mode  location.Mode `json:"mode"`
}

// CameraContext is the orchestrator's output: three views over one result.
type CameraContext struct {
	Display Display `json:"display"`
	Raw     Raw     `json:"raw"`
	Flags   Flags   `json:"flags"`
}
