package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/core/inference"
	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/pkg/metrics"
)

const defaultConcurrency = 4

type EnrichmentService struct {
	sources     ports.SourceProvider
	concurrency int
	log         zerolog.Logger
}

// NewEnrichmentService returns an EnrichmentService that enriches at most
// concurrency identifiers at a time. Non-positive values use the default.
func NewEnrichmentService(sources ports.SourceProvider, concurrency int, log zerolog.Logger) *EnrichmentService {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &EnrichmentService{sources: sources, concurrency: concurrency, log: log}
}

// Enrich enriches a single identifier. The only error it returns is
// domain.ErrInvalidIdentifier; data-source failures degrade to defaults.
func (s *EnrichmentService) Enrich(ctx context.Context, icao24, callsign string, creds ports.Credentials) (domain.EnrichmentResult, error) {
	if err := domain.ValidateIdentifier(icao24); err != nil {
		metrics.EnrichmentsTotal.WithLabelValues("invalid_identifier").Inc()
		return domain.EnrichmentResult{}, err
	}
	return s.safeEnrich(ctx, s.log, s.sources.Source(creds), icao24, callsign), nil
}

// EnrichBatch enriches every valid identifier independently. Invalid ones
// are logged and left out of the result.
func (s *EnrichmentService) EnrichBatch(ctx context.Context, in ports.EnrichInput) map[string]domain.EnrichmentResult {
	start := time.Now()
	defer func() { metrics.BatchDuration.Observe(time.Since(start).Seconds()) }()

	log := s.log.With().Str("batch_id", uuid.NewString()).Logger()
	log.Debug().Int("count", len(in.Identifiers)).Msg("enrichment batch started")

	src := s.sources.Source(in.Credentials)
	results := make([]domain.EnrichmentResult, len(in.Identifiers))
	valid := make([]bool, len(in.Identifiers))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range in.Identifiers {
		if err := domain.ValidateIdentifier(id); err != nil {
			log.Warn().Str("icao24", id).Msg("skipping invalid identifier")
			metrics.EnrichmentsTotal.WithLabelValues("invalid_identifier").Inc()
			continue
		}
		valid[i] = true
		g.Go(func() error {
			results[i] = s.safeEnrich(ctx, log, src, id, in.Callsigns[id])
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]domain.EnrichmentResult, len(in.Identifiers))
	for i, id := range in.Identifiers {
		if valid[i] {
			out[id] = results[i]
		}
	}

	log.Info().
		Int("requested", len(in.Identifiers)).
		Int("enriched", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("enrichment batch completed")
	return out
}

// safeEnrich contains a panicking data source to the identifier it was
// serving.
func (s *EnrichmentService) safeEnrich(ctx context.Context, log zerolog.Logger, src ports.DataSource, icao24, callsign string) (res domain.EnrichmentResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("icao24", icao24).Msg("enrichment failed")
			res = emptyResult(strings.TrimSpace(callsign))
		}
	}()
	return s.enrich(ctx, log, src, icao24, callsign)
}

func (s *EnrichmentService) enrich(ctx context.Context, log zerolog.Logger, src ports.DataSource, icao24, callsign string) domain.EnrichmentResult {
	id := strings.ToLower(icao24)
	callsign = strings.TrimSpace(callsign)
	res := emptyResult(callsign)

	if path, ok := src.FetchTrack(ctx, id); ok {
		res.TrackPoints = domain.TrackPoints(path)
	} else {
		log.Debug().Str("icao24", id).Msg("track data not available")
	}

	if state, ok := src.FetchCurrentState(ctx, id); ok {
		res.Category = state.Category
	} else {
		log.Debug().Str("icao24", id).Msg("state data not available")
	}
	res.AircraftType = domain.DescribeCategory(res.Category)

	outcome := "enriched"
	if res.Category == domain.CategoryNoInformation && callsign != "" {
		inf := inference.InferFromCallsign(domain.AirlineCode(callsign), callsign)
		if inf.AircraftType != "" {
			res.AircraftType = inf.AircraftType
		}
		res.Departure = inf.Route.Departure
		res.Arrival = inf.Route.Arrival
		res.Route = inf.Route.Label()

		source := "fallback"
		if inf.FromTable {
			source = "table"
		}
		metrics.RouteInferenceTotal.WithLabelValues(source).Inc()
		outcome = "inferred"

		log.Debug().
			Str("icao24", id).
			Str("airline", inf.AirlineCode).
			Str("route", res.Route).
			Msg("route inferred")
	}
	metrics.EnrichmentsTotal.WithLabelValues(outcome).Inc()

	return res
}

func emptyResult(callsign string) domain.EnrichmentResult {
	return domain.EnrichmentResult{
		AircraftType: domain.DescribeCategory(domain.CategoryNoInformation),
		TrackPoints:  []domain.TrackPoint{},
		Callsign:     callsign,
	}
}
