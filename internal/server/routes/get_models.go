package routes

import (
	"net/http"
	"strings"

	"github.com/yppgo/patentgraph/internal/server/middleware"
	"github.com/yppgo/patentgraph/pkg/ai"
	"github.com/yppgo/patentgraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetModelsHandler lists the models available on the configured provider,
// optionally filtered by a substring match on the model ID.
func GetModelsHandler(c echo.Context) error {
	type modelsQuery struct {
		Filter string `query:"filter"`
	}

	type modelsResponse struct {
		Message string         `json:"message"`
		Models  []ai.ModelInfo `json:"models"`
	}

	params := new(modelsQuery)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, modelsResponse{
			Message: "Invalid request",
		})
	}

	app := c.(*middleware.AppContext).App
	models, err := app.AiClient.ListModels(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list models", "err", err)
		return c.JSON(http.StatusBadGateway, modelsResponse{
			Message: "Failed to reach model provider",
		})
	}

	if params.Filter != "" {
		filter := strings.ToLower(params.Filter)
		filtered := make([]ai.ModelInfo, 0, len(models))
		for _, m := range models {
			if strings.Contains(strings.ToLower(m.ID), filter) {
				filtered = append(filtered, m)
			}
		}
		models = filtered
	}

	return c.JSON(http.StatusOK, modelsResponse{
		Message: "OK",
		Models:  models,
	})
}

// CreateEstimateHandler predicts the cost and duration of an extraction batch
// before it is run.
func CreateEstimateHandler(c echo.Context) error {
	type estimateBody struct {
		Model           string  `json:"model" validate:"required"`
		SamplePrompt    string  `json:"sample_prompt" validate:"required"`
		Papers          int     `json:"papers" validate:"required,gt=0"`
		OutputPerPaper  int     `json:"output_per_paper"`
		SecondsPerPaper float64 `json:"seconds_per_paper"`
		Workers         int     `json:"workers"`
	}

	type estimateResponse struct {
		Message  string       `json:"message"`
		Estimate *ai.Estimate `json:"estimate,omitempty"`
	}

	data := new(estimateBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, estimateResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, estimateResponse{
			Message: "Invalid request body",
		})
	}

	estimate, err := ai.EstimateBatch(ai.EstimateParams{
		Model:           data.Model,
		SamplePrompt:    data.SamplePrompt,
		Papers:          data.Papers,
		OutputPerPaper:  data.OutputPerPaper,
		SecondsPerPaper: data.SecondsPerPaper,
		Workers:         data.Workers,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, estimateResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, estimateResponse{
		Message:  "OK",
		Estimate: estimate,
	})
}
