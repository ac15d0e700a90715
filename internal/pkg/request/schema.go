// Package request holds the wire shapes shared by the stdio commands and
// the HTTP API, and the validator that checks them.
package request

import (
	"encoding/json"
	"errors"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/core/ports"
)

// ErrMissingIdentifiers is reported when neither icao24 nor icao24s is set.
// The text is part of the stdio contract.
var ErrMissingIdentifiers = errors.New("Input must contain 'icao24' or 'icao24s'")

type OpenSkyAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ClientConfig struct {
	OpenSky OpenSkyAuth `json:"opensky"`
}

// Credentials returns the per-request OpenSky credentials, zero when only
// one half is supplied.
func (c ClientConfig) Credentials() ports.Credentials {
	return ports.Credentials{Username: c.OpenSky.Username, Password: c.OpenSky.Password}
}

// presentString records whether its key appeared in the document. A null
// value counts as present and decodes to "".
type presentString struct {
	set   bool
	value string
}

func (p *presentString) UnmarshalJSON(b []byte) error {
	p.set = true
	if string(b) == "null" {
		p.value = ""
		return nil
	}
	return json.Unmarshal(b, &p.value)
}

// EnrichRequest is the body of an enrichment call. icao24 wins over icao24s
// when both are present, even when it is null.
type EnrichRequest struct {
	ICAO24            presentString     `json:"icao24"`
	ICAO24s           []string          `json:"icao24s"`
	ExistingCallsigns map[string]string `json:"existing_callsigns"`
	Config            ClientConfig      `json:"config"`
}

// Input converts the request to the service DTO.
func (r EnrichRequest) Input() (ports.EnrichInput, error) {
	var ids []string
	switch {
	case r.ICAO24.set:
		ids = []string{r.ICAO24.value}
	case r.ICAO24s != nil:
		ids = r.ICAO24s
	default:
		return ports.EnrichInput{}, ErrMissingIdentifiers
	}
	return ports.EnrichInput{
		Identifiers: ids,
		Callsigns:   r.ExistingCallsigns,
		Credentials: r.Config.Credentials(),
	}, nil
}

// RoutesRequest is the body of a route-profile call. A missing flights
// list is treated as empty.
type RoutesRequest struct {
	Flights []ports.FlightRecord `json:"flights"`
}

// RoutesResponse is the route-profile result.
type RoutesResponse struct {
	Flights        []ports.FlightRecord `json:"flights"`
	EnhancedFields []string             `json:"enhanced_fields"`
}

// NewRoutesResponse pairs flights with the list of fields written to them.
func NewRoutesResponse(flights []ports.FlightRecord) RoutesResponse {
	if flights == nil {
		flights = []ports.FlightRecord{}
	}
	return RoutesResponse{Flights: flights, EnhancedFields: ports.RouteEnhancedFields}
}

// NearbyRequest selects airborne flights around a point. A zero
// max_altitude_ft means no upper bound.
type NearbyRequest struct {
	Lat           float64      `json:"lat"             query:"lat"             validate:"gte=-90,lte=90"`
	Lon           float64      `json:"lon"             query:"lon"             validate:"gte=-180,lte=180"`
	RadiusKm      float64      `json:"radius_km"       query:"radius_km"       validate:"gt=0"`
	MinAltitudeFt float64      `json:"min_altitude_ft" query:"min_altitude_ft" validate:"gte=0"`
	MaxAltitudeFt float64      `json:"max_altitude_ft" query:"max_altitude_ft" validate:"omitempty,gtefield=MinAltitudeFt"`
	Config        ClientConfig `json:"config"          query:"-"`
}

// Query converts the request to the service DTO.
func (r NearbyRequest) Query() ports.NearbyQuery {
	return ports.NearbyQuery{
		Lat:           r.Lat,
		Lon:           r.Lon,
		RadiusKm:      r.RadiusKm,
		MinAltitudeFt: r.MinAltitudeFt,
		MaxAltitudeFt: r.MaxAltitudeFt,
		Credentials:   r.Config.Credentials(),
	}
}

// NearbyResponse lists the flights found.
type NearbyResponse struct {
	Count   int                   `json:"count"`
	Flights []domain.NearbyFlight `json:"flights"`
}

// ErrorResponse is the error envelope used by every transport.
type ErrorResponse struct {
	Error string `json:"error"`
}
