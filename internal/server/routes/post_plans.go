package routes

import (
	"net/http"

	"github.com/yppgo/patentgraph/internal/server/middleware"
	"github.com/yppgo/patentgraph/pkg/causal"
	"github.com/yppgo/patentgraph/pkg/logger"
	"github.com/yppgo/patentgraph/pkg/strategist"

	"github.com/labstack/echo/v4"
)

// CreatePlanHandler builds an executable research plan for a natural
// language question.
func CreatePlanHandler(c echo.Context) error {
	type createPlanBody struct {
		Query string `json:"query" validate:"required"`
	}

	type createPlanResponse struct {
		Message string            `json:"message"`
		Plan    *strategist.Plan  `json:"plan,omitempty"`
		Match   *strategist.Match `json:"match,omitempty"`
	}

	data := new(createPlanBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createPlanResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createPlanResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	ontology, err := causal.Load(app.OntologyPath)
	if err != nil {
		logger.Error("Failed to load ontology", "path", app.OntologyPath, "err", err)
		return c.JSON(http.StatusInternalServerError, createPlanResponse{
			Message: "Internal server error",
		})
	}

	matcher := strategist.NewMatcher(ontology)
	match := matcher.MatchQuestionLLM(c.Request().Context(), app.AiClient, data.Query)

	plan, err := strategist.New(ontology).Analyze(data.Query)
	if err != nil {
		logger.Error("Failed to build plan", "query", data.Query, "err", err)
		return c.JSON(http.StatusUnprocessableEntity, createPlanResponse{
			Message: err.Error(),
			Match:   &match,
		})
	}

	return c.JSON(http.StatusOK, createPlanResponse{
		Message: "Plan created successfully",
		Plan:    plan,
		Match:   &match,
	})
}
