package routes

import (
	"bytes"
	"net/http"

	"github.com/OFFIS-RIT/nodelink/internal/server/middleware"
	"github.com/OFFIS-RIT/nodelink/pkg/layout"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
	"github.com/OFFIS-RIT/nodelink/pkg/render"

	"github.com/labstack/echo/v4"
)

// PostRenderHandler lays out a graph and returns it as an SVG or PNG image.
func PostRenderHandler(c echo.Context) error {
	type renderRequest struct {
		LayoutRequest
		Hover      string `json:"hover"`
		Selected   string `json:"selected"`
		SkipLayout bool   `json:"skip_layout"`
		Labels     *bool  `json:"labels"`
	}

	data := new(renderRequest)
	if err := bindLayout(c, data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	format := c.QueryParam("format")
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "png" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "format must be svg or png"})
	}

	app := c.(*middleware.AppContext).App
	engine, err := newEngine(app, &data.LayoutRequest)
	if err != nil {
		return engineError(c, err)
	}
	if !data.SkipLayout {
		if _, err := layout.NewRunner(engine).RunToCompletion(c.Request().Context()); err != nil {
			return nil
		}
	}

	style := app.Config.Render
	if data.Labels != nil {
		style.Labels = *data.Labels
	}
	view := render.NewView(engine, style)
	view.Hover(data.Hover)
	view.Select(data.Selected)

	var buf bytes.Buffer
	contentType := "image/svg+xml"
	if format == "png" {
		contentType = "image/png"
		err = view.RenderPNG(&buf)
	} else {
		err = view.RenderSVG(&buf)
	}
	if err != nil {
		logger.Error("Failed to render graph", "format", format, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to render graph"})
	}

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
