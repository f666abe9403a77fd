package routes

import (
	"net/http"

	"github.com/yppgo/patentgraph/internal/server/middleware"
	"github.com/yppgo/patentgraph/pkg/logger"
	neo4jstore "github.com/yppgo/patentgraph/pkg/store/neo4j"

	"github.com/labstack/echo/v4"
)

// GetBestPracticesHandler retrieves prior analyses whose objective or
// conclusion mentions a keyword.
func GetBestPracticesHandler(c echo.Context) error {
	type practicesQuery struct {
		Keyword string `query:"keyword" validate:"required"`
		Limit   int    `query:"limit"`
	}

	type practicesResponse struct {
		Message   string                    `json:"message"`
		Practices []neo4jstore.BestPractice `json:"practices"`
	}

	params := new(practicesQuery)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, practicesResponse{
			Message: "Invalid request",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, practicesResponse{
			Message: "Invalid request",
		})
	}

	app := c.(*middleware.AppContext).App
	if app.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, practicesResponse{
			Message: "Graph database is not configured",
		})
	}

	practices, err := app.Store.RetrieveBestPractices(c.Request().Context(), params.Keyword, params.Limit)
	if err != nil {
		logger.Error("Failed to retrieve best practices", "keyword", params.Keyword, "err", err)
		return c.JSON(http.StatusInternalServerError, practicesResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, practicesResponse{
		Message:   "OK",
		Practices: practices,
	})
}
