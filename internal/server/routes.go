package server

import (
	"github.com/yppgo/patentgraph/internal/server/routes"
	"github.com/yppgo/patentgraph/internal/util"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Static ontology viewer
	e.Static("/viewer", util.GetEnvString("VIEWER_DIR", "viewer"))

	apiRoutes := e.Group("/api")

	// Research plan routes
	apiRoutes.POST("/plans", routes.CreatePlanHandler)
	apiRoutes.POST("/conclusions", routes.CreateConclusionHandler)

	// Causal graph routes
	apiRoutes.GET("/graph/stats", routes.GetGraphStatsHandler)
	apiRoutes.POST("/graph/clean", routes.CleanGraphHandler)
	apiRoutes.GET("/hypotheses", routes.GetHypothesesHandler)

	// Model aggregator routes
	apiRoutes.GET("/models", routes.GetModelsHandler)
	apiRoutes.POST("/estimates", routes.CreateEstimateHandler)

	// Patent table metrics
	apiRoutes.POST("/metrics", routes.ComputeMetricsHandler)

	// Pipeline routes
	apiRoutes.POST("/imports", routes.CreateImportHandler)
	apiRoutes.POST("/downloads", routes.CreateDownloadHandler)
	apiRoutes.POST("/extractions", routes.CreateExtractionHandler)

	// Best practice retrieval
	apiRoutes.GET("/practices", routes.GetBestPracticesHandler)
}
