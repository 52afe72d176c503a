package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/nodelink/internal/server/middleware"
	"github.com/OFFIS-RIT/nodelink/pkg/analysis"
	"github.com/OFFIS-RIT/nodelink/pkg/graph"
	"github.com/OFFIS-RIT/nodelink/pkg/loader"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"

	"github.com/labstack/echo/v4"
)

type graphResponse struct {
	graph.Result
	Stats *analysis.Stats `json:"stats,omitempty"`
}

// PostGraphHandler converts text, or the readable text of a web page, into
// a graph. Conversion failures degrade instead of failing the request.
func PostGraphHandler(c echo.Context) error {
	type graphRequest struct {
		Text     string   `json:"text"`
		URL      string   `json:"url" validate:"omitempty,url"`
		Mode     string   `json:"mode" validate:"omitempty,oneof=basic enhanced model"`
		Keywords []string `json:"keywords"`
		Entities []string `json:"entities"`
		Stats    bool     `json:"stats"`
	}

	data := new(graphRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Request body must be JSON"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	text := data.Text
	if data.URL != "" {
		if !loader.IsURL(data.URL) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Only http and https URLs are supported"})
		}
		fetched, err := app.Loader.FetchText(ctx, data.URL)
		if err != nil {
			logger.Error("Failed to fetch url", "url", data.URL, "err", err)
			return c.JSON(http.StatusBadGateway, map[string]string{"message": "Failed to fetch url"})
		}
		text = fetched
	}

	requested := data.Mode
	if requested == "" {
		requested = app.Config.Adapter.Mode
	}
	mode, err := graph.ParseMode(requested)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	res := app.Adapter.Convert(ctx, graph.Request{
		Text:     text,
		Mode:     mode,
		Keywords: data.Keywords,
		Entities: data.Entities,
	})
	recordConversion(app, mode, res)

	out := graphResponse{Result: res}
	if data.Stats {
		stats := analysis.Compute(res.Graph)
		out.Graph = analysis.ApplyWeights(res.Graph, stats)
		out.Stats = &stats
	}

	return c.JSON(http.StatusOK, out)
}

// GetDemoGraphHandler returns the built-in sample graph.
func GetDemoGraphHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, graph.DemoGraph())
}

func recordConversion(app *middleware.App, requested graph.Mode, res graph.Result) {
	methods := make([]string, 0, len(res.Methods))
	for _, m := range res.Methods {
		methods = append(methods, string(m))
	}
	app.Metrics.RecordConversion(string(requested), string(res.Mode), res.Fallback, len(res.Graph.Nodes), res.DroppedLinks, methods)

	session := app.Adapter.Session()
	if session == nil {
		return
	}
	client := session.Client()
	m := client.GetMetrics()
	client.ResetMetrics()
	app.Metrics.RecordModelTokens(m.InputTokens, m.OutputTokens)
}
