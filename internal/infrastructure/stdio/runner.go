// Package stdio runs the enrichment commands as one-shot filters: a JSON
// document on stdin, a JSON document on stdout.
package stdio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/pkg/request"
)

// Runner executes one command per call. Every method writes exactly one
// JSON document to out; a non-nil error means it was an error document
// and the process should exit with status 1.
type Runner struct {
	enrich   ports.EnrichmentService
	routes   ports.RouteService
	nearby   ports.NearbyService
	validate *request.Validator
	log      zerolog.Logger
}

func NewRunner(enrich ports.EnrichmentService, routes ports.RouteService, nearby ports.NearbyService, log zerolog.Logger) *Runner {
	return &Runner{
		enrich:   enrich,
		routes:   routes,
		nearby:   nearby,
		validate: request.NewValidator(),
		log:      log,
	}
}

// Enrich reads an EnrichRequest and writes the identifier → result mapping.
func (r *Runner) Enrich(ctx context.Context, in io.Reader, out io.Writer) error {
	var req request.EnrichRequest
	if err := decode(in, &req); err != nil {
		return r.fail(out, err)
	}
	input, err := req.Input()
	if err != nil {
		return r.fail(out, err)
	}
	r.log.Info().
		Int("count", len(input.Identifiers)).
		Bool("auth", !input.Credentials.IsZero()).
		Msg("enrichment started")

	return writeJSON(out, r.enrich.EnrichBatch(ctx, input))
}

// Routes reads a RoutesRequest and writes the flights with route fields.
// On failure the input flights, if any were read, are echoed back.
func (r *Runner) Routes(in io.Reader, out io.Writer) error {
	var req request.RoutesRequest
	if err := decode(in, &req); err != nil {
		r.log.Error().Err(err).Msg("route profile failed")
		flights := req.Flights
		if flights == nil {
			flights = []ports.FlightRecord{}
		}
		if werr := writeJSON(out, routesError{Error: err.Error(), Flights: flights}); werr != nil {
			return werr
		}
		return err
	}
	return writeJSON(out, request.NewRoutesResponse(r.routes.AugmentFlights(req.Flights)))
}

// Nearby reads a NearbyRequest and writes the airborne flights found.
func (r *Runner) Nearby(ctx context.Context, in io.Reader, out io.Writer) error {
	var req request.NearbyRequest
	if err := decode(in, &req); err != nil {
		return r.fail(out, err)
	}
	return r.NearbyQuery(ctx, req, out)
}

// NearbyQuery is Nearby for a request built by the caller.
func (r *Runner) NearbyQuery(ctx context.Context, req request.NearbyRequest, out io.Writer) error {
	if err := r.validate.Validate(req); err != nil {
		return r.fail(out, err)
	}
	flights, err := r.nearby.Nearby(ctx, req.Query())
	if err != nil {
		return r.fail(out, err)
	}
	return writeJSON(out, request.NearbyResponse{Count: len(flights), Flights: flights})
}

type routesError struct {
	Error   string               `json:"error"`
	Flights []ports.FlightRecord `json:"flights"`
}

func (r *Runner) fail(out io.Writer, err error) error {
	r.log.Error().Err(err).Msg("command failed")
	if werr := WriteError(out, err); werr != nil {
		return werr
	}
	return err
}

// WriteError writes the {"error": ...} document for err.
func WriteError(out io.Writer, err error) error {
	return writeJSON(out, request.ErrorResponse{Error: err.Error()})
}

// decode reads exactly one JSON document; anything after it is an error.
func decode(in io.Reader, v any) error {
	dec := json.NewDecoder(in)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if dec.More() {
		return errors.New("reading input: unexpected data after JSON document")
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
