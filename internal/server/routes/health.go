package routes

import (
	"net/http"
	"time"

	"github.com/OFFIS-RIT/nodelink/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the NLP pipeline works and which state the
// model session is in. It does not load the model.
func HealthHandler(c echo.Context) error {
	type healthResponse struct {
		Status         string    `json:"status"`
		Timestamp      time.Time `json:"timestamp"`
		TestProcessing bool      `json:"test_processing"`
		Model          string    `json:"model"`
		ModelError     string    `json:"model_error,omitempty"`
		Error          string    `json:"error,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	res := healthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().UTC(),
		TestProcessing: true,
		Model:          "disabled",
	}

	if session := app.Adapter.Session(); session != nil {
		res.Model = string(session.State())
		if err := session.Err(); err != nil {
			res.ModelError = err.Error()
		}
	}

	if err := app.Adapter.Processor().SelfTest(); err != nil {
		res.Status = "unhealthy"
		res.TestProcessing = false
		res.Error = err.Error()
		return c.JSON(http.StatusInternalServerError, res)
	}

	return c.JSON(http.StatusOK, res)
}
