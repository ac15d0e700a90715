package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichRequestInput(t *testing.T) {
	var req EnrichRequest
	require.NoError(t, json.Unmarshal([]byte(`{"icao24s": ["a1b2c3", "d4e5f6"], "existing_callsigns": {"a1b2c3": "UAL1"}}`), &req))

	in, err := req.Input()
	require.NoError(t, err)
	assert.Equal(t, []string{"a1b2c3", "d4e5f6"}, in.Identifiers)
	assert.Equal(t, "UAL1", in.Callsigns["a1b2c3"])
	assert.True(t, in.Credentials.IsZero())
}

func TestEnrichRequestSinglePrecedence(t *testing.T) {
	var req EnrichRequest
	require.NoError(t, json.Unmarshal([]byte(`{"icao24": "", "icao24s": ["a1b2c3"]}`), &req))

	in, err := req.Input()
	require.NoError(t, err)
	assert.Equal(t, []string{""}, in.Identifiers)
}

func TestEnrichRequestMissing(t *testing.T) {
	_, err := EnrichRequest{}.Input()
	assert.ErrorIs(t, err, ErrMissingIdentifiers)
	assert.Equal(t, "Input must contain 'icao24' or 'icao24s'", err.Error())
}

func TestNearbyRequestValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(NearbyRequest{Lat: -90, Lon: 180, RadiusKm: 1}))
	assert.NoError(t, v.Validate(NearbyRequest{Lat: 0, Lon: 0, RadiusKm: 5, MinAltitudeFt: 1000}))

	err := v.Validate(NearbyRequest{Lat: 91, Lon: -181, RadiusKm: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lat must be at most 90")
	assert.Contains(t, err.Error(), "lon must be at least -180")
	assert.Contains(t, err.Error(), "radius_km must be greater than 0")

	err = v.Validate(NearbyRequest{RadiusKm: 5, MinAltitudeFt: 5000, MaxAltitudeFt: 1000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_altitude_ft must not be below min_altitude_ft")
}

func TestNearbyRequestQuery(t *testing.T) {
	req := NearbyRequest{Lat: 1, Lon: 2, RadiusKm: 3, MinAltitudeFt: 4, MaxAltitudeFt: 5,
		Config: ClientConfig{OpenSky: OpenSkyAuth{Username: "u", Password: "p"}}}
	q := req.Query()
	assert.Equal(t, 3.0, q.RadiusKm)
	assert.Equal(t, 5.0, q.MaxAltitudeFt)
	assert.Equal(t, "u", q.Credentials.Username)
}

func TestNewRoutesResponseNil(t *testing.T) {
	resp := NewRoutesResponse(nil)
	assert.NotNil(t, resp.Flights)
	assert.Len(t, resp.EnhancedFields, 5)
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "min_altitude_ft", toSnake("MinAltitudeFt"))
	assert.Equal(t, "lat", toSnake("Lat"))
}

func TestEnrichRequestNullSingleIsPresent(t *testing.T) {
	var req EnrichRequest
	require.NoError(t, json.Unmarshal([]byte(`{"icao24": null}`), &req))

	in, err := req.Input()
	require.NoError(t, err)
	assert.Equal(t, []string{""}, in.Identifiers)
}

func TestEnrichRequestSingleMustBeString(t *testing.T) {
	var req EnrichRequest
	assert.Error(t, json.Unmarshal([]byte(`{"icao24": 42}`), &req))
}
