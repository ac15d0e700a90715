package ports

import (
	"context"

	"github.com/flightcard/enrichment-service/internal/core/domain"
)

// EnrichInput is the DTO passed from a transport to EnrichmentService.
type EnrichInput struct {
	Identifiers []string
	// Callsigns maps identifier to the callsign already known for it.
	Callsigns   map[string]string
	Credentials Credentials
}

// EnrichmentService enriches aircraft identifiers.
type EnrichmentService interface {
	// Enrich returns domain.ErrInvalidIdentifier for a malformed identifier
	// and never fails otherwise.
	Enrich(ctx context.Context, icao24, callsign string, creds Credentials) (domain.EnrichmentResult, error)
	// EnrichBatch skips invalid identifiers; the result is keyed by the
	// identifiers as supplied.
	EnrichBatch(ctx context.Context, in EnrichInput) map[string]domain.EnrichmentResult
}

// NearbyQuery describes a circular search area and an altitude band in feet.
// MaxAltitudeFt of zero means no upper bound.
type NearbyQuery struct {
	Lat           float64
	Lon           float64
	RadiusKm      float64
	MinAltitudeFt float64
	MaxAltitudeFt float64
	Credentials   Credentials
}

// NearbyService lists airborne flights around a point.
type NearbyService interface {
	Nearby(ctx context.Context, q NearbyQuery) ([]domain.NearbyFlight, error)
}

// FlightRecord is a free-form flight document; unknown fields are kept.
type FlightRecord map[string]any

// RouteEnhancedFields are the keys AugmentFlights writes, in order.
var RouteEnhancedFields = []string{
	"departure_airport",
	"arrival_airport",
	"departure_city",
	"arrival_city",
	"route",
}

// RouteService annotates flight documents with schedule-style routes.
type RouteService interface {
	AugmentFlights(flights []FlightRecord) []FlightRecord
}
