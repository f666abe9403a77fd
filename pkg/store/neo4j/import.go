package neo4j

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yppgo/patentgraph/pkg/store"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Conclusion classifications derived from the conclusion text.
const (
	ConclusionGap           = "gap"
	ConclusionTrend         = "trend"
	ConclusionEffectiveness = "effectiveness"
	ConclusionGeneral       = "general"
)

// ImportAnalysis writes one paper's analysis chain: the Paper node, its
// Dataset link, and one AnalysisEvent per logic-chain step with its Method,
// Data and Conclusion neighbors.
func (s *Store) ImportAnalysis(ctx context.Context, result *store.AnalysisResult) error {
	if result.PaperMeta.Title == "" {
		return fmt.Errorf("analysis result has no paper title")
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := createPaper(ctx, tx, result.PaperMeta); err != nil {
			return nil, err
		}

		if result.DatasetConfig.DatasetID != "" {
			if err := linkPaperToDataset(ctx, tx, result.PaperMeta.Title, result.DatasetConfig); err != nil {
				return nil, err
			}
		}

		for _, step := range result.LogicChains {
			if err := createAnalysisEvent(ctx, tx, result.PaperMeta.Title, step); err != nil {
				return nil, fmt.Errorf("step %d: %w", step.StepID, err)
			}
		}
		return nil, nil
	})
	return err
}

func createPaper(ctx context.Context, tx neo4j.ManagedTransaction, meta store.PaperMeta) error {
	query := `
		MERGE (p:Paper {title: $title})
		ON CREATE SET p.year = $year
	`
	_, err := tx.Run(ctx, query, map[string]any{
		"title": meta.Title,
		"year":  meta.Year,
	})
	return err
}

func linkPaperToDataset(ctx context.Context, tx neo4j.ManagedTransaction, title string, config store.DatasetConfig) error {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return err
	}

	query := `
		MATCH (p:Paper {title: $paper_title})
		MATCH (d:Dataset)
		WHERE d.name = $dataset_id OR d.name CONTAINS $dataset_id
		MERGE (p)-[r:USES]->(d)
		ON CREATE SET r.config = $dataset_config
	`
	_, err = tx.Run(ctx, query, map[string]any{
		"paper_title":    title,
		"dataset_id":     config.DatasetID,
		"dataset_config": string(configJSON),
	})
	return err
}

func createAnalysisEvent(ctx context.Context, tx neo4j.ManagedTransaction, title string, step store.LogicChainStep) error {
	configJSON, err := json.Marshal(step.MethodConfig)
	if err != nil {
		return err
	}
	metricsJSON, err := json.Marshal(step.EvaluationMetrics)
	if err != nil {
		return err
	}

	queryEvent := `
		MATCH (p:Paper {title: $paper_title})
		CREATE (ae:AnalysisEvent {
			step_id: $step_id,
			objective: $objective,
			method_name: $method_name,
			config: $method_config,
			metrics: $metrics,
			derived_conclusion: $derived_conclusion
		})
		CREATE (p)-[:CONDUCTS]->(ae)
	`
	if _, err := tx.Run(ctx, queryEvent, map[string]any{
		"paper_title":        title,
		"step_id":            step.StepID,
		"objective":          step.Objective,
		"method_name":        step.MethodName,
		"method_config":      string(configJSON),
		"metrics":            string(metricsJSON),
		"derived_conclusion": step.DerivedConclusion,
	}); err != nil {
		return err
	}

	if step.MethodName != "" {
		queryMethod := `
			MATCH (ae:AnalysisEvent)
			WHERE ae.step_id = $step_id AND ae.objective = $objective
			MERGE (m:Method {name: $method_name})
			MERGE (ae)-[:EXECUTES]->(m)
		`
		if _, err := tx.Run(ctx, queryMethod, map[string]any{
			"step_id":     step.StepID,
			"objective":   step.Objective,
			"method_name": step.MethodName,
		}); err != nil {
			return err
		}
	}

	for _, field := range step.DataFieldsUsed {
		queryData := `
			MATCH (ae:AnalysisEvent)
			WHERE ae.step_id = $step_id AND ae.objective = $objective
			MERGE (d:Data {name: $field})
			MERGE (d)-[:FEEDS_INTO]->(ae)
		`
		if _, err := tx.Run(ctx, queryData, map[string]any{
			"step_id":   step.StepID,
			"objective": step.Objective,
			"field":     field,
		}); err != nil {
			return err
		}
	}

	if step.DerivedConclusion != "" {
		queryConclusion := `
			MATCH (ae:AnalysisEvent)
			WHERE ae.step_id = $step_id AND ae.objective = $objective
			CREATE (c:Conclusion {
				content: $conclusion,
				type: $conclusion_type
			})
			CREATE (ae)-[:YIELDS]->(c)
		`
		if _, err := tx.Run(ctx, queryConclusion, map[string]any{
			"step_id":         step.StepID,
			"objective":       step.Objective,
			"conclusion":      step.DerivedConclusion,
			"conclusion_type": ClassifyConclusion(step.DerivedConclusion),
		}); err != nil {
			return err
		}
	}

	return nil
}

// ClassifyConclusion buckets a conclusion by its wording. The Chinese
// markers come from the upstream analysis tables.
func ClassifyConclusion(conclusion string) string {
	lower := strings.ToLower(conclusion)
	switch {
	case strings.Contains(conclusion, "空白") || strings.Contains(lower, "gap"):
		return ConclusionGap
	case strings.Contains(conclusion, "趋势") || strings.Contains(lower, "trend"):
		return ConclusionTrend
	case strings.Contains(conclusion, "有效") || strings.Contains(lower, "effective"):
		return ConclusionEffectiveness
	default:
		return ConclusionGeneral
	}
}
