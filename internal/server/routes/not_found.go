package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Endpoints lists the public routes reported for unknown paths.
var Endpoints = []string{
	"GET /health",
	"GET /api/health",
	"POST /api/process-advanced",
	"POST /api/process-enhanced",
	"POST /api/keywords-only",
	"POST /api/entities-only",
	"POST /api/sentiment-only",
	"POST /api/graph",
	"GET /api/graph/demo",
	"POST /api/layout",
	"POST /api/layout/stream",
	"POST /api/render",
	"GET /metrics",
}

// NotFoundHandler answers unknown routes with the list of endpoints.
func NotFoundHandler(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]any{
		"message":             "Endpoint not found",
		"available_endpoints": Endpoints,
	})
}
