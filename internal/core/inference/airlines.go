// Package inference synthesizes aircraft type and route information from an
// airline code when the data source reports nothing useful.
//
// The tables below stand in for a real flight-schedule database. They are
// hand-curated around Denver operations; do not extend them into a general
// directory.
package inference

import "strings"

// Weight-class labels shared with the ADS-B category table.
const (
	labelSmall = "Small aircraft (15500-75000 lbs)"
	labelLarge = "Large aircraft (75000-300000 lbs)"
)

// Route is an ordered (origin, destination) pair of IATA codes.
type Route struct {
	Departure string
	Arrival   string
}

// Label renders the route the way clients display it.
func (r Route) Label() string {
	return r.Departure + " → " + r.Arrival
}

// FallbackRoute is used for airlines without route candidates.
var FallbackRoute = Route{Departure: "DEN", Arrival: "SLC"}

// Airline holds what the table knows about one carrier. Routes may be
// empty; callers then fall back to FallbackRoute.
type Airline struct {
	Code        string
	DefaultType string
	Routes      []Route
}

func denverRoutes(dests ...string) []Route {
	routes := make([]Route, 0, len(dests))
	for _, d := range dests {
		routes = append(routes, Route{Departure: "DEN", Arrival: d})
	}
	return routes
}

var southwest = denverRoutes("LAS", "PHX", "OAK", "SAN")

var airlines = map[string]Airline{
	"UA": {Code: "UA", DefaultType: labelLarge, Routes: denverRoutes("SFO", "LAX", "ORD", "EWR", "IAH")},
	"AA": {Code: "AA", DefaultType: labelLarge, Routes: denverRoutes("DFW", "ORD", "PHX", "MIA")},
	"DL": {Code: "DL", DefaultType: labelLarge, Routes: denverRoutes("ATL", "MSP", "SLC", "SEA")},
	"SW": {Code: "SW", DefaultType: labelSmall, Routes: southwest},
	"WN": {Code: "WN", DefaultType: labelSmall, Routes: southwest},
	"B6": {Code: "B6", DefaultType: labelSmall, Routes: denverRoutes("JFK", "BOS", "MCO")},
	"AS": {Code: "AS", DefaultType: labelLarge},
	"F9": {Code: "F9", DefaultType: labelSmall},
	"NK": {Code: "NK", DefaultType: labelSmall},
	"HA": {Code: "HA", DefaultType: labelLarge},
	"VX": {Code: "VX", DefaultType: labelSmall},
}

// LookupAirline finds an airline by its two-letter code, ignoring case.
func LookupAirline(code string) (Airline, bool) {
	a, ok := airlines[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// CandidateRoutes returns the airline's route candidates, or a single
// FallbackRoute when the airline is unknown or has none.
func CandidateRoutes(code string) []Route {
	if a, ok := LookupAirline(code); ok && len(a.Routes) > 0 {
		return a.Routes
	}
	return []Route{FallbackRoute}
}
