// Package store defines the analysis-result storage interface and the batch
// import driver over it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yppgo/patentgraph/pkg/logger"
)

// PaperMeta identifies the paper an analysis run came from.
type PaperMeta struct {
	Title string `json:"title"`
	Year  string `json:"year"`
}

// DatasetConfig describes the dataset a paper's analysis used.
type DatasetConfig struct {
	DatasetID string         `json:"dataset_id"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LogicChainStep is one step of a paper's analysis chain.
type LogicChainStep struct {
	StepID            int            `json:"step_id"`
	Objective         string         `json:"objective"`
	MethodName        string         `json:"method_name"`
	MethodConfig      map[string]any `json:"method_config,omitempty"`
	DataFieldsUsed    []string       `json:"data_fields_used,omitempty"`
	EvaluationMetrics []string       `json:"evaluation_metrics,omitempty"`
	DerivedConclusion string         `json:"derived_conclusion"`
}

// AnalysisResult is the on-disk shape of a `*_analysis_result.json` file.
type AnalysisResult struct {
	PaperMeta     PaperMeta        `json:"paper_meta"`
	DatasetConfig DatasetConfig    `json:"dataset_config"`
	LogicChains   []LogicChainStep `json:"analysis_logic_chains"`
}

// AnalysisStore persists analysis results as a graph.
type AnalysisStore interface {
	// ImportAnalysis writes one paper's analysis chain.
	ImportAnalysis(ctx context.Context, result *AnalysisResult) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// ImportStats tallies a batch import.
type ImportStats struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

// DefaultPattern matches the analysis files the pipelines emit.
const DefaultPattern = "*_analysis_result.json"

// ImportDir imports every file in dir matching pattern into the store. A
// file that fails to parse or import is counted and skipped; the batch never
// aborts part-way. An empty pattern uses DefaultPattern.
func ImportDir(ctx context.Context, st AnalysisStore, dir string, pattern string) (ImportStats, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	if _, err := os.Stat(dir); err != nil {
		return ImportStats{}, fmt.Errorf("import folder: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return ImportStats{}, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		logger.Warn("[Import] No files matched", "dir", dir, "pattern", pattern)
		return ImportStats{}, nil
	}

	stats := ImportStats{Total: len(files)}
	for i, file := range files {
		logger.Info("[Import] Processing file",
			"file", filepath.Base(file),
			"progress", fmt.Sprintf("%d/%d", i+1, len(files)),
		)

		result, err := loadResult(file)
		if err != nil {
			logger.Error("[Import] Failed to parse file", "file", filepath.Base(file), "err", err)
			stats.Failed++
			continue
		}

		if err := st.ImportAnalysis(ctx, result); err != nil {
			logger.Error("[Import] Failed to import file", "file", filepath.Base(file), "err", err)
			stats.Failed++
			continue
		}
		stats.Success++
	}

	logger.Info("[Import] Batch complete",
		"success", stats.Success,
		"failed", stats.Failed,
		"total", stats.Total,
	)
	return stats, nil
}

func loadResult(path string) (*AnalysisResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result := new(AnalysisResult)
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, err
	}
	return result, nil
}
