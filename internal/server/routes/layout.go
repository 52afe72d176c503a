package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/OFFIS-RIT/nodelink/internal/server/middleware"
	"github.com/OFFIS-RIT/nodelink/internal/server/util"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/layout"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LayoutRequest is the body shared by the layout and render routes.
type LayoutRequest struct {
	Graph     common.Graph      `json:"graph"`
	Width     float64           `json:"width" validate:"gte=0,lte=20000"`
	Height    float64           `json:"height" validate:"gte=0,lte=20000"`
	Config    *layout.Overrides `json:"config"`
	Placement string            `json:"placement" validate:"omitempty,oneof=circle grid random"`
	Seed      uint64            `json:"seed"`
}

// newEngine builds an engine for data. Zero sizes fall back to the render
// preset and request overrides are applied over the layout preset.
func newEngine(app *middleware.App, data *LayoutRequest) (*layout.Engine, error) {
	width, height := data.Width, data.Height
	if width == 0 {
		width = float64(app.Config.Render.Width)
	}
	if height == 0 {
		height = float64(app.Config.Render.Height)
	}

	cfg := app.Config.Layout
	if data.Config != nil {
		cfg = data.Config.Apply(cfg)
	}

	nodes := layout.Place(data.Graph.Nodes, width, height, cfg.Padding, layout.Placement(data.Placement), data.Seed)
	return layout.New(nodes, data.Graph.Links, width, height, cfg)
}

var (
	errBadBody   = errors.New("Request body must be JSON")
	errBadParams = errors.New("Invalid request params")
)

func bindLayout(c echo.Context, data any) error {
	if err := c.Bind(data); err != nil {
		return errBadBody
	}
	if err := c.Validate(data); err != nil {
		return errBadParams
	}
	return nil
}

func engineError(c echo.Context, err error) error {
	if errors.Is(err, layout.ErrInvalidConfig) {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	logger.Error("Failed to create layout engine", "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
}

// PostLayoutHandler runs a full stabilization and returns the final frame.
func PostLayoutHandler(c echo.Context) error {
	data := new(LayoutRequest)
	if err := bindLayout(c, data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	app := c.(*middleware.AppContext).App
	engine, err := newEngine(app, data)
	if err != nil {
		return engineError(c, err)
	}

	start := time.Now()
	frame, err := layout.NewRunner(engine).RunToCompletion(c.Request().Context())
	app.Metrics.RecordLayoutRun(runOutcome(frame, err), frame.Tick, time.Since(start))
	if err != nil {
		logger.Debug("Layout request cancelled", "request", c.Response().Header().Get(echo.HeaderXRequestID), "tick", frame.Tick)
		return nil
	}

	return c.JSON(http.StatusOK, frame)
}

// StreamLayoutHandler streams every tick of a stabilization run as a
// server-sent event. The run stops when the client disconnects.
func StreamLayoutHandler(c echo.Context) error {
	data := new(LayoutRequest)
	if err := bindLayout(c, data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	app := c.(*middleware.AppContext).App
	engine, err := newEngine(app, data)
	if err != nil {
		return engineError(c, err)
	}

	ctx := c.Request().Context()
	res := c.Response()

	app.Metrics.LayoutRunsInFlight.Inc()
	defer app.Metrics.LayoutRunsInFlight.Dec()

	util.StartEventStream(res)

	start := time.Now()
	runErr := layout.NewRunner(engine).Run(ctx, func(f layout.Frame) error {
		return util.WriteEvent(res, "tick", f)
	})
	final := engine.Frame()
	app.Metrics.RecordLayoutRun(runOutcome(final, runErr), final.Tick, time.Since(start))

	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) {
			logger.Warn("Layout stream ended early", "request", res.Header().Get(echo.HeaderXRequestID), "err", runErr)
		}
		return nil
	}
	return util.WriteEvent(res, "done", final)
}

func runOutcome(f layout.Frame, err error) string {
	switch {
	case len(f.Nodes) == 0:
		return "empty"
	case err != nil:
		return "cancelled"
	case f.Stabilized:
		return "stabilized"
	default:
		return "incomplete"
	}
}
