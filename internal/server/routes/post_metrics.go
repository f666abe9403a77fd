package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/yppgo/patentgraph/pkg/loader"
	"github.com/yppgo/patentgraph/pkg/loader/excel"
	loaderio "github.com/yppgo/patentgraph/pkg/loader/io"
	"github.com/yppgo/patentgraph/pkg/logger"
	"github.com/yppgo/patentgraph/pkg/metrics"
	"github.com/yppgo/patentgraph/pkg/patents"

	"github.com/labstack/echo/v4"
)

// ComputeMetricsHandler loads a patent export table (CSV or Excel) and
// computes the requested metrics over it. With no metrics named, every
// registered metric is computed.
func ComputeMetricsHandler(c echo.Context) error {
	type metricsBody struct {
		FilePath string   `json:"file_path" validate:"required"`
		Metrics  []string `json:"metrics"`
	}

	type metricsResponse struct {
		Message string             `json:"message"`
		Rows    int                `json:"rows,omitempty"`
		Values  map[string]float64 `json:"values,omitempty"`
	}

	data := new(metricsBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, metricsResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, metricsResponse{
			Message: "Invalid request body",
		})
	}

	base := loaderio.NewFileLoader()
	var docLoader loader.DocumentLoader = base
	switch strings.ToLower(filepath.Ext(data.FilePath)) {
	case ".xlsx", ".xls":
		docLoader = excel.NewExcelLoader(base)
	}

	doc := loader.NewTableDocument(loader.NewDocumentParams{
		ID:       filepath.Base(data.FilePath),
		FilePath: data.FilePath,
		Loader:   docLoader,
	})

	frame, err := patents.LoadFrame(c.Request().Context(), docLoader, doc)
	if err != nil {
		logger.Error("Failed to load patent table", "path", data.FilePath, "err", err)
		return c.JSON(http.StatusUnprocessableEntity, metricsResponse{
			Message: err.Error(),
		})
	}

	names := data.Metrics
	if len(names) == 0 {
		names = metrics.Names()
	}

	values := make(map[string]float64, len(names))
	for _, name := range names {
		v, err := metrics.Compute(name, frame)
		if err != nil {
			return c.JSON(http.StatusBadRequest, metricsResponse{
				Message: err.Error(),
			})
		}
		values[name] = v
	}

	return c.JSON(http.StatusOK, metricsResponse{
		Message: "OK",
		Rows:    frame.Len(),
		Values:  values,
	})
}
