package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Unit conversions applied at the data-source boundary.
const (
	FeetPerMeter          = 3.28084
	KnotsPerMeterSecond   = 1.94384
	FeetPerMinPerMeterSec = 196.85
)

// IdentifierLength is the length of an ICAO 24-bit address in hex.
const IdentifierLength = 6

// ValidateIdentifier reports ErrInvalidIdentifier unless id has exactly
// IdentifierLength characters. Characters are counted as code points.
func ValidateIdentifier(id string) error {
	if utf8.RuneCountInString(id) != IdentifierLength {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return nil
}

// AirlineCode returns the first two characters of a callsign, upper-cased.
// Callsigns shorter than two characters yield "".
func AirlineCode(callsign string) string {
	callsign = strings.TrimSpace(callsign)
	if len(callsign) < 2 {
		return ""
	}
	return strings.ToUpper(callsign[:2])
}

// StateVector is a single raw aircraft state as reported by OpenSky.
// Pointer fields are nil when the upstream omitted them.
type StateVector struct {
	ICAO24         string   `msgpack:"icao24"`
	Callsign       string   `msgpack:"callsign"`
	OriginCountry  string   `msgpack:"origin_country"`
	TimePosition   *int64   `msgpack:"time_position"`
	LastContact    int64    `msgpack:"last_contact"`
	Longitude      *float64 `msgpack:"longitude"`
	Latitude       *float64 `msgpack:"latitude"`
	BaroAltitude   *float64 `msgpack:"baro_altitude"`
	OnGround       bool     `msgpack:"on_ground"`
	Velocity       *float64 `msgpack:"velocity"`
	TrueTrack      *float64 `msgpack:"true_track"`
	VerticalRate   *float64 `msgpack:"vertical_rate"`
	Sensors        []int    `msgpack:"sensors"`
	GeoAltitude    *float64 `msgpack:"geo_altitude"`
	Squawk         string   `msgpack:"squawk"`
	SPI            bool     `msgpack:"spi"`
	PositionSource int      `msgpack:"position_source"`
	Category       int      `msgpack:"category"`
}

// HasPosition reports whether both coordinates are present and non-zero.
func (s StateVector) HasPosition() bool {
	return s.Latitude != nil && s.Longitude != nil && *s.Latitude != 0 && *s.Longitude != 0
}

// Waypoint is one point of an OpenSky track.
type Waypoint struct {
	Time         int64    `msgpack:"time"`
	Latitude     *float64 `msgpack:"latitude"`
	Longitude    *float64 `msgpack:"longitude"`
	BaroAltitude *float64 `msgpack:"baro_altitude"`
	TrueTrack    *float64 `msgpack:"true_track"`
	OnGround     bool     `msgpack:"on_ground"`
}

// TrackPoint is a waypoint converted for output (altitude in feet).
type TrackPoint struct {
	Time      int64    `json:"time"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude"`
	TrueTrack *float64 `json:"true_track"`
	OnGround  bool     `json:"on_ground"`
}

// TrackPoints converts waypoints, dropping those without a position.
func TrackPoints(path []Waypoint) []TrackPoint {
	points := make([]TrackPoint, 0, len(path))
	for _, wp := range path {
		if wp.Latitude == nil || wp.Longitude == nil || *wp.Latitude == 0 || *wp.Longitude == 0 {
			continue
		}
		tp := TrackPoint{
			Time:      wp.Time,
			Latitude:  *wp.Latitude,
			Longitude: *wp.Longitude,
			TrueTrack: wp.TrueTrack,
			OnGround:  wp.OnGround,
		}
		if wp.BaroAltitude != nil && *wp.BaroAltitude != 0 {
			ft := *wp.BaroAltitude * FeetPerMeter
			tp.Altitude = &ft
		}
		points = append(points, tp)
	}
	return points
}

// EnrichmentResult is the per-aircraft enrichment payload.
type EnrichmentResult struct {
	AircraftType string       `json:"aircraft_type"`
	TrackPoints  []TrackPoint `json:"track_points"`
	Category     int          `json:"category"`
	Callsign     string       `json:"callsign"`
	Departure    string       `json:"departure,omitempty"`
	Arrival      string       `json:"arrival,omitempty"`
	Route        string       `json:"route,omitempty"`
}

// HasRoute reports whether a route was attached.
func (r EnrichmentResult) HasRoute() bool {
	return r.Departure != "" && r.Arrival != ""
}

// NearbyFlight is an airborne state vector in aviation units.
type NearbyFlight struct {
	ICAO24          string   `json:"icao24"`
	Callsign        string   `json:"callsign"`
	OriginCountry   string   `json:"origin_country"`
	TimePosition    *int64   `json:"time_position"`
	LastContact     int64    `json:"last_contact"`
	Longitude       float64  `json:"longitude"`
	Latitude        float64  `json:"latitude"`
	AltitudeFt      float64  `json:"altitude"`
	OnGround        bool     `json:"on_ground"`
	VelocityKts     float64  `json:"velocity"`
	TrueTrack       *float64 `json:"true_track"`
	VerticalRateFpm float64  `json:"vertical_rate"`
	Sensors         []int    `json:"sensors"`
	GeoAltitudeFt   float64  `json:"geo_altitude"`
	Squawk          string   `json:"squawk"`
	SPI             bool     `json:"spi"`
	PositionSource  int      `json:"position_source"`
	Category        int      `json:"category"`
}

// NewNearbyFlight converts a state vector. Absent measurements become 0.
func NewNearbyFlight(s StateVector) NearbyFlight {
	f := NearbyFlight{
		ICAO24:         s.ICAO24,
		Callsign:       strings.TrimSpace(s.Callsign),
		OriginCountry:  s.OriginCountry,
		TimePosition:   s.TimePosition,
		LastContact:    s.LastContact,
		OnGround:       s.OnGround,
		TrueTrack:      s.TrueTrack,
		Sensors:        s.Sensors,
		Squawk:         s.Squawk,
		SPI:            s.SPI,
		PositionSource: s.PositionSource,
		Category:       s.Category,
	}
	if s.Latitude != nil {
		f.Latitude = *s.Latitude
	}
	if s.Longitude != nil {
		f.Longitude = *s.Longitude
	}
	f.AltitudeFt = scaled(s.BaroAltitude, FeetPerMeter)
	f.VelocityKts = scaled(s.Velocity, KnotsPerMeterSecond)
	f.VerticalRateFpm = scaled(s.VerticalRate, FeetPerMinPerMeterSec)
	f.GeoAltitudeFt = scaled(s.GeoAltitude, FeetPerMeter)
	return f
}

func scaled(v *float64, factor float64) float64 {
	if v == nil {
		return 0
	}
	return *v * factor
}
