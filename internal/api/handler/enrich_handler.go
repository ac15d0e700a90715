package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/pkg/request"
)

// EnrichHandler handles the enrichment and route-profile endpoints.
type EnrichHandler struct {
	enrich ports.EnrichmentService
	routes ports.RouteService
}

func NewEnrichHandler(enrich ports.EnrichmentService, routes ports.RouteService) *EnrichHandler {
	return &EnrichHandler{enrich: enrich, routes: routes}
}

// Enrich handles POST /v1/enrich.
func (h *EnrichHandler) Enrich(c echo.Context) error {
	var req request.EnrichRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	in, err := req.Input()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.enrich.EnrichBatch(c.Request().Context(), in))
}

// Routes handles POST /v1/routes.
func (h *EnrichHandler) Routes(c echo.Context) error {
	var req request.RoutesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.JSON(http.StatusOK, request.NewRoutesResponse(h.routes.AugmentFlights(req.Flights)))
}
