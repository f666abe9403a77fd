package routes

import (
	"net/http"

	"github.com/yppgo/patentgraph/internal/server/middleware"
	"github.com/yppgo/patentgraph/pkg/ai"
	"github.com/yppgo/patentgraph/pkg/logger"
	neo4jstore "github.com/yppgo/patentgraph/pkg/store/neo4j"

	"github.com/labstack/echo/v4"
)

// CreateConclusionHandler summarizes an analysis discussion into a
// conclusion and classifies it (gap, trend, effectiveness or general).
func CreateConclusionHandler(c echo.Context) error {
	type conclusionBody struct {
		Messages []ai.ChatMessage `json:"messages" validate:"required,min=1"`
		Model    string           `json:"model"`
	}

	type conclusionResponse struct {
		Message string           `json:"message"`
		Type    string           `json:"type,omitempty"`
		Metrics *ai.ModelMetrics `json:"metrics,omitempty"`
	}

	data := new(conclusionBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, conclusionResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, conclusionResponse{
			Message: "Invalid request body",
		})
	}

	opts := []ai.GenerateOption{ai.WithSystemPrompts(ai.ConclusionSystemPrompt)}
	if data.Model != "" {
		opts = append(opts, ai.WithModel(data.Model))
	}

	app := c.(*middleware.AppContext).App
	summary, err := app.AiClient.GenerateChat(c.Request().Context(), data.Messages, opts...)
	if err != nil || summary == "" {
		logger.Error("Failed to summarize conclusion", "err", err)
		return c.JSON(http.StatusBadGateway, conclusionResponse{
			Message: "Failed to reach model provider",
		})
	}

	metrics := app.AiClient.GetMetrics()
	return c.JSON(http.StatusOK, conclusionResponse{
		Message: summary,
		Type:    neo4jstore.ClassifyConclusion(summary),
		Metrics: &metrics,
	})
}
