package service

import (
	"github.com/rs/zerolog"

	"github.com/flightcard/enrichment-service/internal/core/inference"
	"github.com/flightcard/enrichment-service/internal/core/ports"
)

type RouteService struct {
	log zerolog.Logger
}

func NewRouteService(log zerolog.Logger) *RouteService {
	return &RouteService{log: log}
}

// AugmentFlights returns copies of flights with the route fields set. The
// input records are not modified.
func (s *RouteService) AugmentFlights(flights []ports.FlightRecord) []ports.FlightRecord {
	out := make([]ports.FlightRecord, 0, len(flights))
	matched := 0

	for _, f := range flights {
		enhanced := make(ports.FlightRecord, len(f)+len(ports.RouteEnhancedFields))
		for k, v := range f {
			enhanced[k] = v
		}

		callsign, _ := f["callsign"].(string)
		if r, ok := inference.LookupHubRoute(callsign); ok {
			enhanced["departure_airport"] = r.Departure
			enhanced["arrival_airport"] = r.Arrival
			enhanced["departure_city"] = r.DepartureCity
			enhanced["arrival_city"] = r.ArrivalCity
			enhanced["route"] = r.Label()
			matched++
		} else {
			enhanced["departure_airport"] = inference.UnknownAirport
			enhanced["arrival_airport"] = inference.UnknownAirport
			enhanced["departure_city"] = inference.UnknownCity
			enhanced["arrival_city"] = inference.UnknownCity
			enhanced["route"] = inference.UnknownRoute
		}
		out = append(out, enhanced)
	}

	s.log.Debug().Int("flights", len(flights)).Int("matched", matched).Msg("route profile applied")
	return out
}
