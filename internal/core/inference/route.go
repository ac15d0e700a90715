package inference

// Hash sums the Unicode code points of s. Collisions are expected.
func Hash(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

// SelectRoute picks one candidate deterministically. The flight number is
// hashed when given, otherwise the airline code. An empty candidate list
// yields FallbackRoute.
func SelectRoute(routes []Route, flightNumber, airlineCode string) Route {
	if len(routes) == 0 {
		return FallbackRoute
	}
	key := flightNumber
	if key == "" {
		key = airlineCode
	}
	return routes[Hash(key)%len(routes)]
}

// Inference is the synthesized result for one callsign.
type Inference struct {
	AirlineCode string
	// AircraftType is empty when the airline has no default type.
	AircraftType string
	Route        Route
	// FromTable is false when Route is FallbackRoute for an unknown airline
	// or one without candidates.
	FromTable bool
}

// InferFromCallsign derives the airline code from the callsign and picks a
// route using the full callsign as the hash input.
func InferFromCallsign(airlineCode, callsign string) Inference {
	inf := Inference{AirlineCode: airlineCode}
	airline, ok := LookupAirline(airlineCode)
	if ok {
		inf.AircraftType = airline.DefaultType
		inf.FromTable = len(airline.Routes) > 0
	}
	inf.Route = SelectRoute(CandidateRoutes(airlineCode), callsign, airlineCode)
	return inf
}
