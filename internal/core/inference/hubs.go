package inference

// ProfileOrigin is the hub the route profile assumes every flight departs.
const ProfileOrigin = "DEN"

// Defaults written when no hub route matches.
const (
	UnknownAirport = "Unknown"
	UnknownCity    = "Unknown City"
	UnknownRoute   = "Unknown Route"
)

// hubRoutes maps airline → hub → destinations, first destination preferred.
var hubRoutes = map[string]map[string][]string{
	"UA": {
		"DEN": {"SFO", "LAX", "ORD", "EWR", "IAH", "SEA", "MSP"},
		"SFO": {"DEN", "ORD", "LAX", "JFK", "EWR"},
		"ORD": {"DEN", "SFO", "LAX", "MIA", "DFW"},
	},
	"AA": {
		"DEN": {"DFW", "ORD", "PHX", "MIA", "LAX"},
		"DFW": {"DEN", "LAX", "MIA", "JFK", "ORD"},
	},
	"DL": {
		"DEN": {"ATL", "MSP", "SLC", "SEA", "JFK"},
		"ATL": {"DEN", "LAX", "JFK", "MIA", "ORD"},
	},
	"SW": {
		"DEN": {"LAS", "PHX", "OAK", "SAN", "LAX"},
	},
}

var airportCities = map[string]string{
	"DEN": "Denver, CO",
	"SFO": "San Francisco, CA",
	"LAX": "Los Angeles, CA",
	"ORD": "Chicago, IL",
	"EWR": "Newark, NJ",
	"IAH": "Houston, TX",
	"SEA": "Seattle, WA",
	"MSP": "Minneapolis, MN",
	"DFW": "Dallas/Fort Worth, TX",
	"PHX": "Phoenix, AZ",
	"MIA": "Miami, FL",
	"JFK": "New York, NY",
	"ATL": "Atlanta, GA",
	"SLC": "Salt Lake City, UT",
	"LAS": "Las Vegas, NV",
	"OAK": "Oakland, CA",
	"SAN": "San Diego, CA",
}

// City returns the city for an airport code, or the code itself.
func City(airport string) string {
	if c, ok := airportCities[airport]; ok {
		return c
	}
	return airport
}

// HubRoute is a route annotated with city names.
type HubRoute struct {
	Route
	DepartureCity string
	ArrivalCity   string
}

// LookupHubRoute resolves the schedule-style route for a callsign. The
// airline code is matched case-sensitively and callsigns shorter than three
// characters never match.
func LookupHubRoute(callsign string) (HubRoute, bool) {
	if len(callsign) < 3 {
		return HubRoute{}, false
	}
	hubs, ok := hubRoutes[callsign[:2]]
	if !ok {
		return HubRoute{}, false
	}
	dests := hubs[ProfileOrigin]
	if len(dests) == 0 {
		return HubRoute{}, false
	}
	r := Route{Departure: ProfileOrigin, Arrival: dests[0]}
	return HubRoute{
		Route:         r,
		DepartureCity: City(r.Departure),
		ArrivalCity:   City(r.Arrival),
	}, true
}
