package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/KrishKoria/Qest/internal/analytics"
)

// AnalyticsHandler serves the dashboard snapshot endpoints.
type AnalyticsHandler struct {
	Agg *analytics.Aggregator
}

func NewAnalyticsHandler(agg *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{Agg: agg}
}

// Revenue returns the revenue snapshot for the current calendar month.
func (h *AnalyticsHandler) Revenue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	snap, err := h.Agg.RevenueMetrics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, snap)
}

// Clients returns the client-base snapshot.
func (h *AnalyticsHandler) Clients(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	snap, err := h.Agg.ClientMetrics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, snap)
}
