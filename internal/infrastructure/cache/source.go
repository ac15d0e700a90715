// Package cache decorates a ports.DataSource with a short-lived lookup cache.
package cache

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/pkg/metrics"
)

// Source serves per-aircraft lookups from store before asking next.
// Only successful lookups are stored. Bounding-box queries pass through.
type Source struct {
	next  ports.DataSource
	store ports.Cache
	log   zerolog.Logger
}

// NewSource wraps next with store.
func NewSource(next ports.DataSource, store ports.Cache, log zerolog.Logger) *Source {
	return &Source{next: next, store: store, log: log}
}

// Wrap returns a decorator suitable for opensky.NewProvider.
func Wrap(store ports.Cache, log zerolog.Logger) func(ports.DataSource) ports.DataSource {
	return func(next ports.DataSource) ports.DataSource {
		return NewSource(next, store, log)
	}
}

func (s *Source) FetchStatesInBoundingBox(ctx context.Context, box domain.BoundingBox) ([]domain.StateVector, bool) {
	return s.next.FetchStatesInBoundingBox(ctx, box)
}

func (s *Source) FetchCurrentState(ctx context.Context, icao24 string) (domain.StateVector, bool) {
	key := "state:" + icao24
	var st domain.StateVector
	if s.load(ctx, "state", key, &st) {
		return st, true
	}
	st, ok := s.next.FetchCurrentState(ctx, icao24)
	if ok {
		s.save(ctx, key, st)
	}
	return st, ok
}

func (s *Source) FetchTrack(ctx context.Context, icao24 string) ([]domain.Waypoint, bool) {
	key := "track:" + icao24
	var path []domain.Waypoint
	if s.load(ctx, "track", key, &path) {
		return path, true
	}
	path, ok := s.next.FetchTrack(ctx, icao24)
	if ok {
		s.save(ctx, key, path)
	}
	return path, ok
}

func (s *Source) load(ctx context.Context, kind, key string, out any) bool {
	raw, ok := s.store.Get(ctx, key)
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
		return false
	}
	if err := msgpack.Unmarshal(raw, out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
		return false
	}
	metrics.CacheLookupsTotal.WithLabelValues(kind, "hit").Inc()
	return true
}

func (s *Source) save(ctx context.Context, key string, v any) {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("encoding cache entry")
		return
	}
	s.store.Set(ctx, key, raw)
}
