package opensky

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/core/ports"
)

// Source adapts a Client to ports.DataSource. Upstream errors are logged
// and reported as unavailable.
type Source struct {
	client *Client
	log    zerolog.Logger
}

// NewSource wraps client.
func NewSource(client *Client, log zerolog.Logger) *Source {
	return &Source{client: client, log: log}
}

func (s *Source) FetchStatesInBoundingBox(ctx context.Context, box domain.BoundingBox) ([]domain.StateVector, bool) {
	states, err := s.client.GetStates(ctx, StatesQuery{Box: &box})
	if err != nil {
		s.unavailable(err, "states", "")
		return nil, false
	}
	return states, true
}

func (s *Source) FetchCurrentState(ctx context.Context, icao24 string) (domain.StateVector, bool) {
	states, err := s.client.GetStates(ctx, StatesQuery{ICAO24: []string{icao24}})
	if err != nil {
		s.unavailable(err, "states", icao24)
		return domain.StateVector{}, false
	}
	if len(states) == 0 {
		return domain.StateVector{}, false
	}
	return states[0], true
}

func (s *Source) FetchTrack(ctx context.Context, icao24 string) ([]domain.Waypoint, bool) {
	path, err := s.client.GetTrack(ctx, icao24)
	if err != nil {
		s.unavailable(err, "tracks", icao24)
		return nil, false
	}
	return path, true
}

func (s *Source) unavailable(err error, endpoint, icao24 string) {
	err = unavailableError(endpoint, err)
	ev := s.log.Warn()
	if errors.Is(err, ErrNotFound) {
		ev = s.log.Debug()
	}
	ev.Err(err).Str("endpoint", endpoint).Str("icao24", icao24).Msg("lookup failed")
}

func unavailableError(endpoint string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrDataSourceUnavailable, endpoint, err)
}

// Provider hands out Sources. Zero credentials get the configured client;
// explicit credentials get a Basic-auth copy of it.
type Provider struct {
	base *Client
	def  *Source
	log  zerolog.Logger
	wrap func(ports.DataSource) ports.DataSource
}

// NewProvider creates a Provider around client. wrap, when non-nil,
// decorates every Source handed out (e.g. with a cache).
func NewProvider(client *Client, log zerolog.Logger, wrap func(ports.DataSource) ports.DataSource) *Provider {
	p := &Provider{base: client, log: log, wrap: wrap}
	p.def = NewSource(client, log)
	return p
}

// Source satisfies ports.SourceProvider.
func (p *Provider) Source(creds ports.Credentials) ports.DataSource {
	var src ports.DataSource = p.def
	if !creds.IsZero() {
		src = NewSource(p.base.WithCredentials(creds.Username, creds.Password), p.log)
	}
	if p.wrap != nil {
		src = p.wrap(src)
	}
	return src
}
