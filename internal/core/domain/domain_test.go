package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Bounding box
// ---------------------------------------------------------------------------

func TestComputeBoundingBoxLatSpan(t *testing.T) {
	for _, lat := range []float64{-89.5, -45, 0, 39.81, 60, 89.9} {
		box, err := ComputeBoundingBox(lat, -105.11, 50)
		require.NoError(t, err)
		assert.InDelta(t, 2*50/111.0, box.LatMax-box.LatMin, 1e-9, "lat %v", lat)
		assert.True(t, box.Contains(lat, -105.11), "lat %v", lat)
	}
}

func TestComputeBoundingBoxDenver(t *testing.T) {
	lat, lon := 39.8121035, -105.1125547
	box, err := ComputeBoundingBox(lat, lon, 50)
	require.NoError(t, err)

	lonDelta := 50 / (111.0 * math.Abs(math.Cos(lat*math.Pi/180)))
	assert.InDelta(t, lat-50/111.0, box.LatMin, 1e-9)
	assert.InDelta(t, lat+50/111.0, box.LatMax, 1e-9)
	assert.InDelta(t, lon-lonDelta, box.LonMin, 1e-9)
	assert.InDelta(t, lon+lonDelta, box.LonMax, 1e-9)
}

func TestComputeBoundingBoxPoleIsFinite(t *testing.T) {
	for _, lat := range []float64{90, -90} {
		box, err := ComputeBoundingBox(lat, 10, 25)
		require.NoError(t, err)
		assert.False(t, math.IsInf(box.LonMin, 0))
		assert.False(t, math.IsInf(box.LonMax, 0))
		assert.True(t, box.Contains(lat, 10))
	}
}

func TestComputeBoundingBoxRejectsInvalid(t *testing.T) {
	cases := []struct {
		name          string
		lat, lon, rad float64
	}{
		{"lat too high", 90.5, 0, 10},
		{"lat too low", -91, 0, 10},
		{"zero radius", 0, 0, 0},
		{"negative radius", 0, 0, -5},
		{"nan lat", math.NaN(), 0, 10},
		{"inf radius", 0, 0, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeBoundingBox(tc.lat, tc.lon, tc.rad)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func TestDescribeCategoryKnown(t *testing.T) {
	assert.Equal(t, "Heavy aircraft (> 300000 lbs)", DescribeCategory(6))
	assert.Equal(t, "No information", DescribeCategory(0))
	assert.Equal(t, "Line Obstacle", DescribeCategory(20))
}

func TestDescribeCategoryIsTotal(t *testing.T) {
	assert.Equal(t, "Category 13", DescribeCategory(13))
	assert.Equal(t, "Category 21", DescribeCategory(21))
	assert.Equal(t, "Category -1", DescribeCategory(-1))
	for code := -5; code < 40; code++ {
		assert.NotEmpty(t, DescribeCategory(code))
	}
}

// ---------------------------------------------------------------------------
// Identifiers and callsigns
// ---------------------------------------------------------------------------

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, ValidateIdentifier("a1b2c3"))
	assert.ErrorIs(t, ValidateIdentifier("ABC"), ErrInvalidIdentifier)
	assert.ErrorIs(t, ValidateIdentifier(""), ErrInvalidIdentifier)
	assert.ErrorIs(t, ValidateIdentifier("a1b2c3d"), ErrInvalidIdentifier)
}

func TestValidateIdentifierCountsCharacters(t *testing.T) {
	assert.ErrorIs(t, ValidateIdentifier("ééé"), ErrInvalidIdentifier, "three characters in six bytes")
	assert.NoError(t, ValidateIdentifier("абвгде"))
}

func TestAirlineCode(t *testing.T) {
	assert.Equal(t, "UA", AirlineCode("UA123"))
	assert.Equal(t, "DL", AirlineCode(" dl45 "))
	assert.Equal(t, "", AirlineCode("U"))
	assert.Equal(t, "", AirlineCode(""))
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func TestTrackPointsDropsMissingPositions(t *testing.T) {
	path := []Waypoint{
		{Time: 1, Latitude: ptr(39.8), Longitude: ptr(-105.1), BaroAltitude: ptr(1000.0), TrueTrack: ptr(90.0)},
		{Time: 2, Latitude: nil, Longitude: ptr(-105.1)},
		{Time: 3, Latitude: ptr(39.9), Longitude: ptr(-105.2), BaroAltitude: nil, OnGround: true},
	}
	points := TrackPoints(path)
	require.Len(t, points, 2)

	require.NotNil(t, points[0].Altitude)
	assert.InDelta(t, 3280.84, *points[0].Altitude, 1e-6)
	assert.Equal(t, int64(1), points[0].Time)

	assert.Nil(t, points[1].Altitude)
	assert.True(t, points[1].OnGround)
}

func TestNewNearbyFlightConverts(t *testing.T) {
	s := StateVector{
		ICAO24:       "abc123",
		Callsign:     "UAL456  ",
		Latitude:     ptr(40.0),
		Longitude:    ptr(-105.0),
		BaroAltitude: ptr(10000.0),
		Velocity:     ptr(250.0),
		VerticalRate: ptr(-5.0),
		GeoAltitude:  ptr(10100.0),
		Category:     4,
	}
	f := NewNearbyFlight(s)
	assert.Equal(t, "UAL456", f.Callsign)
	assert.InDelta(t, 32808.4, f.AltitudeFt, 1e-6)
	assert.InDelta(t, 485.96, f.VelocityKts, 1e-6)
	assert.InDelta(t, -984.25, f.VerticalRateFpm, 1e-6)
	assert.InDelta(t, 33136.484, f.GeoAltitudeFt, 1e-6)
	assert.Equal(t, 4, f.Category)
}

func TestNewNearbyFlightAbsentMeasurements(t *testing.T) {
	f := NewNearbyFlight(StateVector{ICAO24: "abc123"})
	assert.Zero(t, f.AltitudeFt)
	assert.Zero(t, f.VelocityKts)
	assert.Zero(t, f.VerticalRateFpm)
	assert.Nil(t, f.TrueTrack)
}
