package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/flightcard/enrichment-service/internal/api/handler"
	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/pkg/request"
)

// Services are the core services the HTTP API exposes.
type Services struct {
	Enrich ports.EnrichmentService
	Routes ports.RouteService
	Nearby ports.NearbyService
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when Redis is not configured.
func NewRouter(svc Services, rdb handler.Pinger, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = request.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))

	// --- Dependencies ---
	enrichHandler := handler.NewEnrichHandler(svc.Enrich, svc.Routes)
	flightHandler := handler.NewFlightHandler(svc.Nearby)

	v1 := e.Group("/v1")
	v1.POST("/enrich", enrichHandler.Enrich)
	v1.POST("/routes", enrichHandler.Routes)
	v1.GET("/flights/nearby", flightHandler.Nearby)
	v1.GET("/categories/:code", flightHandler.Category)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the shared cache up?

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
