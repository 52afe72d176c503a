package routes

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/OFFIS-RIT/nodelink/internal/server/middleware"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/graph"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
	"github.com/OFFIS-RIT/nodelink/pkg/nlp"

	"github.com/labstack/echo/v4"
)

// textError maps input validation errors to a 400 response.
func textError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, nlp.ErrEmptyText):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "No text provided for processing"})
	case errors.Is(err, nlp.ErrTextTooLong):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Text too long. Maximum 50,000 characters allowed."})
	default:
		logger.Error("Failed to process text", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal processing error"})
	}
}

// ProcessAdvancedHandler runs the NLP pipeline. Options missing from the
// request default to enabled.
func ProcessAdvancedHandler(c echo.Context) error {
	type processRequest struct {
		Text    string      `json:"text"`
		Options nlp.Options `json:"options"`
	}

	type metadata struct {
		ProcessedAt time.Time   `json:"processed_at"`
		TotalSteps  int         `json:"total_steps"`
		OptionsUsed nlp.Options `json:"options_used"`
	}

	type processResponse struct {
		*common.Analysis
		Success  bool     `json:"success"`
		Metadata metadata `json:"metadata"`
	}

	data := &processRequest{Options: nlp.AllOptions()}
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Request body must be JSON"})
	}

	app := c.(*middleware.AppContext).App
	res, err := app.Adapter.Processor().Process(data.Text, data.Options)
	if err != nil {
		return textError(c, err)
	}

	logger.Info("Processed text", "steps", len(res.Steps), "entities", len(res.Entities))

	return c.JSON(http.StatusOK, processResponse{
		Analysis: res,
		Success:  true,
		Metadata: metadata{
			ProcessedAt: time.Now().UTC(),
			TotalSteps:  len(res.Steps),
			OptionsUsed: data.Options,
		},
	})
}

// ProcessEnhancedHandler runs the NLP pipeline followed by batch refinement.
func ProcessEnhancedHandler(c echo.Context) error {
	type enhanceOptions struct {
		BatchSize int `json:"batch_size" validate:"omitempty,min=1,max=200"`
	}

	type enhanceRequest struct {
		Text    string         `json:"text"`
		Options enhanceOptions `json:"options"`
	}

	type processingStats struct {
		EntitiesCount      int                        `json:"entities_count"`
		KeywordsCount      int                        `json:"keywords_count"`
		RelationshipsCount int                        `json:"relationships_count"`
		Batches            int                        `json:"batches"`
		Methods            map[graph.RefineMethod]int `json:"refinement_methods"`
		ModelState         string                     `json:"model_state"`
		EnhancedPipeline   bool                       `json:"enhanced_pipeline"`
	}

	type enhanceResponse struct {
		Entities         []common.Entity       `json:"entities"`
		Keywords         []common.Keyword      `json:"keywords"`
		Relationships    []common.Relationship `json:"relationships"`
		ProcessingStats  processingStats       `json:"processing_stats"`
		EnhancedPipeline bool                  `json:"enhanced_pipeline"`
	}

	data := new(enhanceRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Request body must be JSON"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request options"})
	}

	app := c.(*middleware.AppContext).App
	analysis, err := app.Adapter.Processor().Process(data.Text, nlp.AllOptions())
	if err != nil {
		return textError(c, err)
	}

	cfg := app.Adapter.BatchConfig()
	if data.Options.BatchSize > 0 {
		cfg = graph.BatchConfig{
			EntitiesPerBatch:      data.Options.BatchSize,
			KeywordsPerBatch:      data.Options.BatchSize,
			RelationshipsPerBatch: data.Options.BatchSize,
		}
	}

	ctx := c.Request().Context()
	enhanced := app.Adapter.EnhanceWithConfig(ctx, analysis, cfg)

	methods := make(map[graph.RefineMethod]int)
	names := make([]string, 0, len(enhanced.Methods))
	for _, m := range enhanced.Methods {
		methods[m]++
		names = append(names, string(m))
	}
	app.Metrics.RecordConversion(string(graph.ModeEnhanced), string(graph.ModeEnhanced), "", 0, 0, names)

	modelState := "disabled"
	if session := app.Adapter.Session(); session != nil {
		modelState = string(session.State())
	}

	out := enhanced.Analysis
	logger.Info("Enhanced processing complete",
		"entities", len(out.Entities),
		"keywords", len(out.Keywords),
		"relationships", len(out.Relationships),
	)

	return c.JSON(http.StatusOK, enhanceResponse{
		Entities:      out.Entities,
		Keywords:      out.Keywords,
		Relationships: out.Relationships,
		ProcessingStats: processingStats{
			EntitiesCount:      len(out.Entities),
			KeywordsCount:      len(out.Keywords),
			RelationshipsCount: len(out.Relationships),
			Batches:            enhanced.Batches,
			Methods:            methods,
			ModelState:         modelState,
			EnhancedPipeline:   true,
		},
		EnhancedPipeline: true,
	})
}

// KeywordsOnlyHandler extracts keywords only.
func KeywordsOnlyHandler(c echo.Context) error {
	type keywordsRequest struct {
		Text        string `json:"text"`
		MaxKeywords int    `json:"max_keywords" validate:"omitempty,min=1,max=200"`
	}

	data := &keywordsRequest{MaxKeywords: nlp.DefaultMaxKeywords}
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Request body must be JSON"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid max_keywords"})
	}
	if err := nlp.ValidateText(data.Text); err != nil {
		return textError(c, err)
	}

	keywords := nlp.ExtractKeywords(data.Text, data.MaxKeywords)
	return c.JSON(http.StatusOK, map[string]any{
		"keywords":     keywords,
		"count":        len(keywords),
		"processed_at": time.Now().UTC(),
	})
}

// EntitiesOnlyHandler extracts named entities only.
func EntitiesOnlyHandler(c echo.Context) error {
	type entitiesRequest struct {
		Text string `json:"text"`
	}

	data := new(entitiesRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Request body must be JSON"})
	}
	if err := nlp.ValidateText(data.Text); err != nil {
		return textError(c, err)
	}

	entities := nlp.ExtractEntities(data.Text)
	types := make([]string, 0)
	for _, e := range entities {
		if !slices.Contains(types, e.Label) {
			types = append(types, e.Label)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"entities":     entities,
		"count":        len(entities),
		"entity_types": types,
		"processed_at": time.Now().UTC(),
	})
}

// SentimentOnlyHandler scores sentiment only.
func SentimentOnlyHandler(c echo.Context) error {
	type sentimentRequest struct {
		Text string `json:"text"`
	}

	data := new(sentimentRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Request body must be JSON"})
	}
	if err := nlp.ValidateText(data.Text); err != nil {
		return textError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"sentiment":    nlp.AnalyzeSentiment(data.Text),
		"processed_at": time.Now().UTC(),
	})
}
