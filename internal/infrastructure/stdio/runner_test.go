package stdio

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/core/service"
)

type fakeSource struct {
	states map[string]domain.StateVector
	inBox  []domain.StateVector
}

func (f *fakeSource) FetchStatesInBoundingBox(context.Context, domain.BoundingBox) ([]domain.StateVector, bool) {
	return f.inBox, f.inBox != nil
}

func (f *fakeSource) FetchCurrentState(_ context.Context, id string) (domain.StateVector, bool) {
	st, ok := f.states[id]
	return st, ok
}

func (f *fakeSource) FetchTrack(context.Context, string) ([]domain.Waypoint, bool) {
	return nil, false
}

type fakeProvider struct {
	src   ports.DataSource
	creds []ports.Credentials
}

func (p *fakeProvider) Source(c ports.Credentials) ports.DataSource {
	p.creds = append(p.creds, c)
	return p.src
}

func newRunner(src *fakeSource) (*Runner, *fakeProvider) {
	p := &fakeProvider{src: src}
	log := zerolog.Nop()
	return NewRunner(
		service.NewEnrichmentService(p, 2, log),
		service.NewRouteService(log),
		service.NewNearbyService(p, log),
		log,
	), p
}

func f64(v float64) *float64 { return &v }

func TestEnrichEndToEnd(t *testing.T) {
	r, p := newRunner(&fakeSource{states: map[string]domain.StateVector{"a1b2c3": {ICAO24: "a1b2c3"}}})

	in := `{
		"icao24s": ["a1b2c3", "ABC"],
		"existing_callsigns": {"a1b2c3": "UA123"},
		"config": {"opensky": {"username": "alice", "password": "pw"}}
	}`
	var out bytes.Buffer
	require.NoError(t, r.Enrich(context.Background(), strings.NewReader(in), &out))

	var got map[string]domain.EnrichmentResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	res := got["a1b2c3"]
	assert.Equal(t, "Large aircraft (75000-300000 lbs)", res.AircraftType)
	assert.Equal(t, "DEN → SFO", res.Route)
	assert.Equal(t, "DEN", res.Departure)
	assert.Equal(t, "SFO", res.Arrival)
	assert.Equal(t, "UA123", res.Callsign)
	assert.Empty(t, res.TrackPoints)

	require.Len(t, p.creds, 1)
	assert.Equal(t, "alice", p.creds[0].Username)
	assert.Contains(t, out.String(), "\n  \"a1b2c3\": {")
}

func TestEnrichSingleIdentifier(t *testing.T) {
	r, _ := newRunner(&fakeSource{states: map[string]domain.StateVector{"abc123": {Category: 3}}})

	var out bytes.Buffer
	require.NoError(t, r.Enrich(context.Background(), strings.NewReader(`{"icao24": "abc123", "icao24s": ["zzz999"]}`), &out))

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Contains(t, got, "abc123")
	assert.NotContains(t, got, "zzz999")
	assert.Equal(t, "Small aircraft (15500-75000 lbs)", got["abc123"]["aircraft_type"])
	assert.NotContains(t, got["abc123"], "route")
}

func TestEnrichEmptyList(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	require.NoError(t, r.Enrich(context.Background(), strings.NewReader(`{"icao24s": []}`), &out))
	assert.JSONEq(t, `{}`, out.String())
}

func TestEnrichMissingIdentifiers(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	err := r.Enrich(context.Background(), strings.NewReader(`{"existing_callsigns": {}}`), &out)
	require.Error(t, err)
	assert.JSONEq(t, `{"error": "Input must contain 'icao24' or 'icao24s'"}`, out.String())
}

func TestEnrichMalformedInput(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	err := r.Enrich(context.Background(), strings.NewReader(`{not json`), &out)
	require.Error(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Contains(t, got["error"], "reading input")
}

func TestRoutes(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	require.NoError(t, r.Routes(strings.NewReader(`{"flights": [{"callsign": "UAL123", "altitude": 35000}, {"callsign": "X"}]}`), &out))

	var got struct {
		Flights        []map[string]any `json:"flights"`
		EnhancedFields []string         `json:"enhanced_fields"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Flights, 2)
	assert.Equal(t, "DEN → SFO", got.Flights[0]["route"])
	assert.Equal(t, 35000.0, got.Flights[0]["altitude"])
	assert.Equal(t, "Unknown Route", got.Flights[1]["route"])
	assert.Equal(t, ports.RouteEnhancedFields, got.EnhancedFields)
}

func TestRoutesMissingFlights(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	require.NoError(t, r.Routes(strings.NewReader(`{}`), &out))
	assert.JSONEq(t, `{"flights": [], "enhanced_fields": ["departure_airport", "arrival_airport", "departure_city", "arrival_city", "route"]}`, out.String())
}

func TestRoutesMalformedInput(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	err := r.Routes(strings.NewReader(`[`), &out)
	require.Error(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.NotEmpty(t, got["error"])
	assert.Equal(t, []any{}, got["flights"])
}

func TestNearby(t *testing.T) {
	r, _ := newRunner(&fakeSource{inBox: []domain.StateVector{{
		ICAO24:       "a1b2c3",
		Callsign:     "UAL123  ",
		Latitude:     f64(39.8),
		Longitude:    f64(-105.1),
		BaroAltitude: f64(3000),
	}}})

	var out bytes.Buffer
	require.NoError(t, r.Nearby(context.Background(), strings.NewReader(`{"lat": 39.8, "lon": -105.1, "radius_km": 25}`), &out))

	var got struct {
		Count   int `json:"count"`
		Flights []struct {
			ICAO24   string `json:"icao24"`
			Callsign string `json:"callsign"`
		} `json:"flights"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "UAL123", got.Flights[0].Callsign)
}

func TestNearbyInvalid(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	err := r.Nearby(context.Background(), strings.NewReader(`{"lat": 120, "lon": 0, "radius_km": 0}`), &out)
	require.Error(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Contains(t, got["error"], "lat must be at most 90")
	assert.Contains(t, got["error"], "radius_km must be greater than 0")
}

func TestEnrichRejectsTrailingData(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	err := r.Enrich(context.Background(), strings.NewReader(`{"icao24s": []} {"icao24s": ["a1b2c3"]}`), &out)
	require.Error(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Contains(t, got["error"], "unexpected data after JSON document")
}

func TestEnrichAllowsTrailingWhitespace(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	require.NoError(t, r.Enrich(context.Background(), strings.NewReader("{\"icao24s\": []}\n\n"), &out))
	assert.JSONEq(t, `{}`, out.String())
}

func TestEnrichNullSingleIdentifier(t *testing.T) {
	r, _ := newRunner(&fakeSource{})

	var out bytes.Buffer
	require.NoError(t, r.Enrich(context.Background(), strings.NewReader(`{"icao24": null}`), &out))
	assert.JSONEq(t, `{}`, out.String())
}
