// Package handler exposes the HTTP endpoints: the two agent roles, the
// record-store reads, the two domain writes and the dashboard analytics
// snapshots.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a plain liveness endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Root identifies the service.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Fitness Studio Agent System",
		"status":  "active",
		"version": "1.0.0",
	})
}
