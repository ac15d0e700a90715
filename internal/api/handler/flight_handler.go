package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/pkg/request"
)

// FlightHandler handles live-traffic lookups.
type FlightHandler struct {
	nearby ports.NearbyService
}

func NewFlightHandler(nearby ports.NearbyService) *FlightHandler {
	return &FlightHandler{nearby: nearby}
}

// Nearby handles GET /v1/flights/nearby.
func (h *FlightHandler) Nearby(c echo.Context) error {
	var req request.NearbyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	flights, err := h.nearby.Nearby(c.Request().Context(), req.Query())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request.NearbyResponse{Count: len(flights), Flights: flights})
}

type categoryResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// Category handles GET /v1/categories/:code.
func (h *FlightHandler) Category(c echo.Context) error {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "category code must be an integer")
	}
	return c.JSON(http.StatusOK, categoryResponse{Code: code, Description: domain.DescribeCategory(code)})
}
