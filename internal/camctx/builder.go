package camctx

import (
	"fmt"
	"math"
	"time"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/geocode"
	"github.com/snapcontext/snapcontext/internal/location"
	"github.com/snapcontext/snapcontext/internal/poi"
	"github.com/snapcontext/snapcontext/internal/weather"
)

// Units selects altitude formatting.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

const (
	// emptyWeatherPlaceholder is rendered when no snapshot is available,
	// whether due to timeout or provider failure. The two cases are
	// indistinguishable at the display layer; Flags.WeatherTimedOut tells
	// them apart from nothing-at-all.
	emptyWeatherPlaceholder = "-- 0°C"

	// timeLayout carries milliseconds so burst shots half a second apart
	// render distinct time strings.
	timeLayout = "2006-01-02 15:04:05.000"

	metersPerFoot = 0.3048
)

// BuilderInput carries everything BuildContext needs. BuildContext does no
// I/O and never suspends; given the same input it produces the same output.
type BuilderInput struct {
	Reading          location.Reading
	Address          *geocode.Address
	Weather          *weather.Snapshot
	POIs             []poi.Item
	CapturedAt       time.Time
	WeatherTimedOut  bool
	UsingMockWeather bool
	Scene            Scene
	Mode             location.Mode
	Units            Units
}

// BuildContext assembles the three-part camera context from raw source
// outputs.
func BuildContext(in BuilderInput) CameraContext {
	pois := in.POIs
	if pois == nil {
		pois = []poi.Item{}
	}

	return CameraContext{
		Display: Display{
			Title:            buildTitle(in.Address, in.Reading.Coordinate),
			Subtitle:         buildSubtitle(in.Address, pois),
			WeatherString:    weatherString(in.Weather),
			TimeString:       formatTime(in.CapturedAt),
			AltitudeString:   altitudeString(in.Reading.Altitude, in.Units),
			CoordinateString: coordinateString(in.Reading.Coordinate),
		},
		Raw: Raw{
			Reading:   in.Reading,
			Address:   in.Address,
			POIs:      pois,
			Timestamp: in.CapturedAt,
			Weather:   in.Weather,
		},
		Flags: Flags{
			FromCache:        false,
			UsingMockWeather: in.UsingMockWeather,
			WeatherTimedOut:  in.WeatherTimedOut,
			Scene:            in.Scene,
			Mode:             in.Mode,
		},
	}
}

// buildTitle picks the first non-empty value in the precedence chain:
// locality+sublocality, locality, administrative area, formatted address,
// raw coordinate string.
func buildTitle(addr *geocode.Address, coord geo.Coordinate) string {
	if addr != nil {
		switch {
		case addr.Locality != "" && addr.SubLocality != "":
			return addr.Locality + " " + addr.SubLocality
		case addr.Locality != "":
			return addr.Locality
		case addr.AdministrativeArea != "":
			return addr.AdministrativeArea
		case addr.FormattedAddress != "":
			return addr.FormattedAddress
		}
	}
	return coordinateString(coord)
}

// buildSubtitle picks the first non-empty value in the precedence chain:
// first area of interest, street name, the address's own name, first POI
// name, empty string.
func buildSubtitle(addr *geocode.Address, pois []poi.Item) string {
	if addr != nil {
		if len(addr.AreasOfInterest) > 0 && addr.AreasOfInterest[0] != "" {
			return addr.AreasOfInterest[0]
		}
		if addr.Thoroughfare != "" {
			return addr.Thoroughfare
		}
		if addr.Name != "" {
			return addr.Name
		}
	}
	if len(pois) > 0 {
		return pois[0].Name
	}
	return ""
}

// weatherString renders "{condition} {temperature}°C", or the fixed
// placeholder when no snapshot is available.
func weatherString(snapshot *weather.Snapshot) string {
	if snapshot == nil {
		return emptyWeatherPlaceholder
	}
	return fmt.Sprintf("%s %d°C", snapshot.Condition, int(math.Round(snapshot.Temperature)))
}

// coordinateString renders signed degrees as hemisphere letters with fixed
// 4-decimal precision, e.g. "39.9042°N, 116.4074°E".
func coordinateString(coord geo.Coordinate) string {
	latHem := "N"
	if coord.Lat < 0 {
		latHem = "S"
	}
	lonHem := "E"
	if coord.Lon < 0 {
		lonHem = "W"
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s",
		math.Abs(coord.Lat), latHem, math.Abs(coord.Lon), lonHem)
}

// altitudeString renders the altitude to 1-decimal precision in the
// configured unit.
func altitudeString(meters float64, units Units) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%.1f ft", meters/metersPerFoot)
	}
	return fmt.Sprintf("%.1f m", meters)
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}
