package routes

import (
	"net/http"

	"github.com/yppgo/patentgraph/internal/server/middleware"
	"github.com/yppgo/patentgraph/pkg/causal"
	"github.com/yppgo/patentgraph/pkg/logger"
	neo4jstore "github.com/yppgo/patentgraph/pkg/store/neo4j"

	"github.com/labstack/echo/v4"
)

// GetGraphStatsHandler reports ontology and graph database statistics.
func GetGraphStatsHandler(c echo.Context) error {
	type graphStatsResponse struct {
		Message  string                 `json:"message"`
		Ontology *causal.Statistics     `json:"ontology,omitempty"`
		Database *neo4jstore.GraphStats `json:"database,omitempty"`
	}

	app := c.(*middleware.AppContext).App

	ontology, err := causal.Load(app.OntologyPath)
	if err != nil {
		logger.Error("Failed to load ontology", "path", app.OntologyPath, "err", err)
		return c.JSON(http.StatusInternalServerError, graphStatsResponse{
			Message: "Internal server error",
		})
	}
	stats := causal.NewQuery(ontology).Statistics()

	resp := graphStatsResponse{
		Message:  "OK",
		Ontology: &stats,
	}

	if app.Store != nil {
		dbStats, err := app.Store.Stats(c.Request().Context())
		if err != nil {
			logger.Warn("Failed to fetch graph database stats", "err", err)
		} else {
			resp.Database = dbStats
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// CleanGraphHandler removes unmapped causal paths from the ontology file and
// records the run in its cleaning history. A backup is written first.
func CleanGraphHandler(c echo.Context) error {
	type cleanGraphResponse struct {
		Message string              `json:"message"`
		Result  *causal.CleanResult `json:"result,omitempty"`
	}

	app := c.(*middleware.AppContext).App

	result, err := causal.CleanFile(app.OntologyPath)
	if err != nil {
		logger.Error("Failed to clean ontology", "path", app.OntologyPath, "err", err)
		return c.JSON(http.StatusInternalServerError, cleanGraphResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, cleanGraphResponse{
		Message: "Graph cleaned successfully",
		Result:  &result,
	})
}

// GetHypothesesHandler suggests testable hypotheses for a research goal.
func GetHypothesesHandler(c echo.Context) error {
	type hypothesesQuery struct {
		Goal string `query:"goal" validate:"required"`
		TopK int    `query:"top_k"`
	}

	type hypothesesResponse struct {
		Message    string              `json:"message"`
		Hypotheses []causal.Hypothesis `json:"hypotheses,omitempty"`
	}

	params := new(hypothesesQuery)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, hypothesesResponse{
			Message: "Invalid request",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, hypothesesResponse{
			Message: "Invalid request",
		})
	}
	if params.TopK <= 0 {
		params.TopK = 5
	}

	app := c.(*middleware.AppContext).App
	ontology, err := causal.Load(app.OntologyPath)
	if err != nil {
		logger.Error("Failed to load ontology", "path", app.OntologyPath, "err", err)
		return c.JSON(http.StatusInternalServerError, hypothesesResponse{
			Message: "Internal server error",
		})
	}

	hypotheses := causal.NewQuery(ontology).SuggestHypotheses(params.Goal, params.TopK)

	return c.JSON(http.StatusOK, hypothesesResponse{
		Message:    "OK",
		Hypotheses: hypotheses,
	})
}
