package routes

import (
	"encoding/json"
	"net/http"

	"github.com/yppgo/patentgraph/internal/queue"
	"github.com/yppgo/patentgraph/internal/server/middleware"
	"github.com/yppgo/patentgraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreateImportHandler enqueues a batch import of analysis result files.
func CreateImportHandler(c echo.Context) error {
	type importBody struct {
		Folder  string `json:"folder" validate:"required"`
		Pattern string `json:"pattern"`
	}

	type importResponse struct {
		Message string `json:"message"`
	}

	data := new(importBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{
			Message: "Invalid request body",
		})
	}

	queueData := queue.QueueImportMsg{
		Message: "Batch import requested",
		Folder:  data.Folder,
		Pattern: data.Pattern,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, importResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.ImportQueue, msgBytes); err != nil {
		logger.Error("Failed to publish to import_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, importResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, importResponse{
		Message: "Import queued",
	})
}

// CreateDownloadHandler enqueues a PDF download for a DOI.
func CreateDownloadHandler(c echo.Context) error {
	type downloadBody struct {
		DOI     string `json:"doi" validate:"required"`
		DestDir string `json:"dest_dir"`
	}

	type downloadResponse struct {
		Message string `json:"message"`
	}

	data := new(downloadBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, downloadResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, downloadResponse{
			Message: "Invalid request body",
		})
	}

	queueData := queue.QueueDownloadMsg{
		Message: "Download requested",
		DOI:     data.DOI,
		DestDir: data.DestDir,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, downloadResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.DownloadQueue, msgBytes); err != nil {
		logger.Error("Failed to publish to download_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, downloadResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, downloadResponse{
		Message: "Download queued",
	})
}

// CreateExtractionHandler enqueues causal extraction for a paper.
func CreateExtractionHandler(c echo.Context) error {
	type extractionBody struct {
		PaperID  string `json:"paper_id" validate:"required"`
		Text     string `json:"text"`
		FilePath string `json:"file_path"`
		Model    string `json:"model"`
	}

	type extractionResponse struct {
		Message string `json:"message"`
	}

	data := new(extractionBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, extractionResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, extractionResponse{
			Message: "Invalid request body",
		})
	}
	if data.Text == "" && data.FilePath == "" {
		return c.JSON(http.StatusBadRequest, extractionResponse{
			Message: "Either text or file_path is required",
		})
	}

	app := c.(*middleware.AppContext).App
	queueData := queue.QueueExtractMsg{
		Message:      "Extraction requested",
		PaperID:      data.PaperID,
		Text:         data.Text,
		FilePath:     data.FilePath,
		OntologyPath: app.OntologyPath,
		Model:        data.Model,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, extractionResponse{
			Message: "Internal server error",
		})
	}

	if err := queue.PublishFIFO(app.Queue, queue.ExtractQueue, msgBytes); err != nil {
		logger.Error("Failed to publish to extract_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, extractionResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, extractionResponse{
		Message: "Extraction queued",
	})
}
