package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/nodelink/internal/config"
	"github.com/OFFIS-RIT/nodelink/internal/metrics"
	"github.com/OFFIS-RIT/nodelink/internal/provider"
	mid "github.com/OFFIS-RIT/nodelink/internal/server/middleware"
	"github.com/OFFIS-RIT/nodelink/internal/util"
	"github.com/OFFIS-RIT/nodelink/pkg/ai"
	"github.com/OFFIS-RIT/nodelink/pkg/loader/web"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// NewApp wires the shared dependencies from cfg. client may be nil, which
// disables every model feature.
func NewApp(cfg *config.Config, client ai.GraphAIClient, reg *metrics.Registry) *mid.App {
	return &mid.App{
		Adapter: provider.Adapter(cfg, client),
		Loader: web.NewLoader(web.NewLoaderParams{
			Client:   &http.Client{Timeout: util.GetEnvDuration("FETCH_TIMEOUT", 15*time.Second)},
			MaxBytes: int64(util.GetEnvNumeric("FETCH_MAX_BYTES", 5<<20)),
		}),
		Metrics: reg,
		Config:  cfg,
	}
}

// New creates the echo instance serving app.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return util.NewID("req") },
	}))
	e.Use(mid.AppContextMiddleware(app))
	e.Use(mid.Metrics(app.Metrics))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("8M"))

	RegisterRoutes(e, app)
	return e
}

// Init loads the configuration from the environment and serves the API on
// PORT.
func Init() {
	cfg, err := config.Load(util.GetEnv("LAYOUT_CONFIG"))
	if err != nil {
		logger.Fatal("Failed to load layout config", "err", err)
	}
	Serve(cfg, util.GetEnvString("PORT", "8080"))
}

// Serve runs the API on port with cfg and shuts down gracefully on SIGINT
// or SIGTERM.
func Serve(cfg *config.Config, port string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(cfg, provider.AIClientFromEnv(), metrics.DefaultRegistry())
	e := New(app)

	go func() {
		logger.Info("Starting server", "port", port, "mode", cfg.Adapter.Mode)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
