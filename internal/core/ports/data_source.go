package ports

import (
	"context"

	"github.com/flightcard/enrichment-service/internal/core/domain"
)

// DataSource is the flight-state data source. Every method absorbs
// upstream failures: ok is false when the data is unavailable, and no
// error ever crosses this boundary.
type DataSource interface {
	FetchStatesInBoundingBox(ctx context.Context, box domain.BoundingBox) (states []domain.StateVector, ok bool)
	FetchCurrentState(ctx context.Context, icao24 string) (state domain.StateVector, ok bool)
	FetchTrack(ctx context.Context, icao24 string) (path []domain.Waypoint, ok bool)
}

// Credentials are passed through to the data source untouched.
type Credentials struct {
	Username string
	Password string
}

// IsZero reports whether no credentials were supplied.
func (c Credentials) IsZero() bool {
	return c.Username == "" || c.Password == ""
}

// SourceProvider returns a DataSource authenticated with creds. Zero
// credentials select the provider's configured default.
type SourceProvider interface {
	Source(creds Credentials) DataSource
}
