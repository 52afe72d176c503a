package server

import (
	"github.com/OFFIS-RIT/nodelink/internal/server/middleware"
	"github.com/OFFIS-RIT/nodelink/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, app *middleware.App) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(app.Metrics.Handler()))

	apiRoutes := e.Group("/api")
	apiRoutes.GET("/health", routes.HealthHandler)

	// NLP routes
	apiRoutes.POST("/process-advanced", routes.ProcessAdvancedHandler)
	apiRoutes.POST("/process-enhanced", routes.ProcessEnhancedHandler)
	apiRoutes.POST("/keywords-only", routes.KeywordsOnlyHandler)
	apiRoutes.POST("/entities-only", routes.EntitiesOnlyHandler)
	apiRoutes.POST("/sentiment-only", routes.SentimentOnlyHandler)

	// Graph routes
	apiRoutes.POST("/graph", routes.PostGraphHandler)
	apiRoutes.GET("/graph/demo", routes.GetDemoGraphHandler)

	// Layout and render routes
	apiRoutes.POST("/layout", routes.PostLayoutHandler)
	apiRoutes.POST("/layout/stream", routes.StreamLayoutHandler)
	apiRoutes.POST("/render", routes.PostRenderHandler)

	e.RouteNotFound("/*", routes.NotFoundHandler)
}
