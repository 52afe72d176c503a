package middleware

import (
	"github.com/OFFIS-RIT/nodelink/internal/config"
	"github.com/OFFIS-RIT/nodelink/internal/metrics"
	"github.com/OFFIS-RIT/nodelink/pkg/graph"
	"github.com/OFFIS-RIT/nodelink/pkg/loader"

	"github.com/labstack/echo/v4"
)

// App holds the dependencies shared by every request.
type App struct {
	Adapter *graph.Adapter
	Loader  loader.TextLoader
	Metrics *metrics.Registry
	Config  *config.Config
}

// AppContext is the echo context handed to every route.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context into an AppContext.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
