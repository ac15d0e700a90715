package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/core/ports"
)

type NearbyService struct {
	sources ports.SourceProvider
	log     zerolog.Logger
}

func NewNearbyService(sources ports.SourceProvider, log zerolog.Logger) *NearbyService {
	return &NearbyService{sources: sources, log: log}
}

// Nearby returns airborne flights inside the bounding box of the query
// whose barometric altitude falls within the requested band.
func (s *NearbyService) Nearby(ctx context.Context, q ports.NearbyQuery) ([]domain.NearbyFlight, error) {
	box, err := domain.ComputeBoundingBox(q.Lat, q.Lon, q.RadiusKm)
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}
	if q.MaxAltitudeFt > 0 && q.MinAltitudeFt > q.MaxAltitudeFt {
		return nil, fmt.Errorf("nearby: %w: min altitude %v above max %v", domain.ErrInvalidInput, q.MinAltitudeFt, q.MaxAltitudeFt)
	}

	s.log.Debug().
		Float64("lamin", box.LatMin).
		Float64("lamax", box.LatMax).
		Float64("lomin", box.LonMin).
		Float64("lomax", box.LonMax).
		Msg("querying bounding box")

	states, ok := s.sources.Source(q.Credentials).FetchStatesInBoundingBox(ctx, box)
	if !ok {
		s.log.Warn().Msg("no flight states returned from data source")
		return []domain.NearbyFlight{}, nil
	}

	flights := make([]domain.NearbyFlight, 0, len(states))
	for _, st := range states {
		if st.OnGround || !st.HasPosition() {
			continue
		}
		f := domain.NewNearbyFlight(st)
		if f.AltitudeFt < q.MinAltitudeFt {
			continue
		}
		if q.MaxAltitudeFt > 0 && f.AltitudeFt > q.MaxAltitudeFt {
			continue
		}
		flights = append(flights, f)
	}

	s.log.Info().Int("states", len(states)).Int("flights", len(flights)).Msg("nearby flights filtered")
	return flights, nil
}
