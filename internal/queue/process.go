package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yppgo/patentgraph/internal/storage"
	"github.com/yppgo/patentgraph/pkg/ai"
	"github.com/yppgo/patentgraph/pkg/causal"
	"github.com/yppgo/patentgraph/pkg/downloader"
	"github.com/yppgo/patentgraph/pkg/loader"
	loaderio "github.com/yppgo/patentgraph/pkg/loader/io"
	loaderweb "github.com/yppgo/patentgraph/pkg/loader/web"
	"github.com/yppgo/patentgraph/pkg/logger"
	"github.com/yppgo/patentgraph/pkg/store"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// ProcessImportMessage batch imports analysis result files from a folder into
// the graph store.
func ProcessImportMessage(
	ctx context.Context,
	st store.AnalysisStore,
	msg string,
) error {
	data := new(QueueImportMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	pattern := data.Pattern
	if pattern == "" {
		pattern = store.DefaultPattern
	}

	start := time.Now()
	stats, err := store.ImportDir(ctx, st, data.Folder, pattern)
	if err != nil {
		return err
	}

	logger.Info("[Queue] Batch import finished",
		"folder", data.Folder,
		"total", stats.Total,
		"success", stats.Success,
		"failed", stats.Failed,
		"duration", time.Since(start),
	)

	if stats.Failed > 0 && stats.Success == 0 {
		return fmt.Errorf("all %d analysis files failed to import from %s", stats.Total, data.Folder)
	}

	return nil
}

// ProcessDownloadMessage fetches a paper PDF through the mirror chain and
// archives it in S3 when a client is configured.
func ProcessDownloadMessage(
	ctx context.Context,
	dl *downloader.Downloader,
	s3Client *awss3.Client,
	msg string,
) error {
	data := new(QueueDownloadMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	destDir := data.DestDir
	if destDir == "" {
		destDir = os.TempDir()
	}

	path, err := dl.Download(ctx, data.DOI, destDir)
	if err != nil {
		return err
	}

	if s3Client == nil {
		logger.Info("[Queue] Downloaded PDF kept on disk", "doi", data.DOI, "path", path)
		return nil
	}

	pdf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading downloaded pdf: %w", err)
	}

	key, err := storage.ArchivePDF(ctx, s3Client, data.DOI, bytes.NewReader(pdf))
	if err != nil {
		return err
	}

	logger.Info("[Queue] Archived PDF", "doi", data.DOI, "key", key)
	return nil
}

// ProcessExtractMessage runs causal extraction over a paper text and merges
// the extracted fragment into the ontology file.
func ProcessExtractMessage(
	ctx context.Context,
	aiClient ai.Client,
	msg string,
) error {
	data := new(QueueExtractMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	text := data.Text
	if text == "" && data.FilePath != "" {
		var doc loader.Document
		if strings.HasPrefix(data.FilePath, "http://") || strings.HasPrefix(data.FilePath, "https://") {
			doc = loader.NewWebDocument(loader.NewDocumentParams{
				ID:       data.PaperID,
				FilePath: data.FilePath,
				Loader:   loaderweb.NewWebLoader(),
			})
		} else {
			doc = loader.NewPaperDocument(loader.NewDocumentParams{
				ID:       data.PaperID,
				FilePath: data.FilePath,
				Loader:   loaderio.NewFileLoader(),
			})
		}
		content, err := doc.GetText(ctx)
		if err != nil {
			return fmt.Errorf("loading paper text: %w", err)
		}
		text = string(content)
	}
	if text == "" {
		return fmt.Errorf("extract message for paper %s carries neither text nor file path", data.PaperID)
	}

	extractor := causal.NewExtractor(causal.NewExtractorParams{
		Client: aiClient,
		Model:  data.Model,
	})

	start := time.Now()
	fragment, err := extractor.Extract(ctx, text)
	if err != nil {
		return err
	}

	ontology, err := causal.Load(data.OntologyPath)
	if err != nil {
		return err
	}

	result := causal.Merge(ontology, fragment, time.Now())
	if err := causal.Save(data.OntologyPath, ontology); err != nil {
		return err
	}

	logger.Info("[Queue] Extraction merged into ontology",
		"paper_id", data.PaperID,
		"new_variables", result.NewVariables,
		"new_paths", result.NewPaths,
		"reinforced", result.Reinforced,
		"duration", time.Since(start),
	)

	return nil
}
