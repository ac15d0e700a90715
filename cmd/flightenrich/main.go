// Command flightenrich enriches aircraft identifiers with OpenSky data.
//
//	flightenrich [enrich]   read {"icao24s": [...]} on stdin, write results
//	flightenrich routes     read {"flights": [...]} on stdin, add routes
//	flightenrich nearby     list airborne flights around -lat/-lon
//	flightenrich serve      run the HTTP API on $PORT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/flightcard/enrichment-service/internal/api"
	"github.com/flightcard/enrichment-service/internal/infrastructure/stdio"
	"github.com/flightcard/enrichment-service/internal/pkg/config"
	"github.com/flightcard/enrichment-service/internal/pkg/request"
	"github.com/flightcard/enrichment-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd, args := splitCommand(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		_ = stdio.WriteError(stdout, err)
		return 1
	}

	logOut := stderr
	if cmd == "serve" {
		logOut = stdout
	}
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: logOut,
		File:   cfg.LogFile,
		Fields: map[string]string{"service": "flightenrich", "env": cfg.Env},
	})

	a := newApp(ctx, cfg, log)
	defer a.close()

	runner := stdio.NewRunner(a.services.Enrich, a.services.Routes, a.services.Nearby, log)

	switch cmd {
	case "enrich":
		err = runner.Enrich(ctx, stdin, stdout)
	case "routes":
		err = runner.Routes(stdin, stdout)
	case "nearby":
		req, perr := parseNearby(args, stderr)
		if perr != nil {
			_ = stdio.WriteError(stdout, perr)
			return 2
		}
		err = runner.NearbyQuery(ctx, req, stdout)
	case "serve":
		err = serve(ctx, cfg, a, log)
	default:
		fmt.Fprintf(stderr, "usage: flightenrich [enrich|routes|nearby|serve]\n")
		return 2
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("command failed")
		return 1
	}
	return 0
}

// splitCommand returns the subcommand and its arguments. With no
// subcommand the process behaves as the enrich filter.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || len(args[0]) > 0 && args[0][0] == '-' {
		return "enrich", args
	}
	return args[0], args[1:]
}

func parseNearby(args []string, stderr io.Writer) (request.NearbyRequest, error) {
	var req request.NearbyRequest
	fs := flag.NewFlagSet("nearby", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&req.Lat, "lat", 0, "center latitude in degrees")
	fs.Float64Var(&req.Lon, "lon", 0, "center longitude in degrees")
	fs.Float64Var(&req.RadiusKm, "radius", 50, "search radius in km")
	fs.Float64Var(&req.MinAltitudeFt, "min-alt", 0, "minimum altitude in feet")
	fs.Float64Var(&req.MaxAltitudeFt, "max-alt", 0, "maximum altitude in feet (0 for no limit)")
	if err := fs.Parse(args); err != nil {
		return req, err
	}
	return req, nil
}

func serve(ctx context.Context, cfg *config.Config, a *app, log zerolog.Logger) error {
	e := api.NewRouter(a.services, a.pinger(), log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
