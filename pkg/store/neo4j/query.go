package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// BestPractice is one complete logic-chain step retrieved from the graph.
type BestPractice struct {
	PaperTitle string `json:"paper_title"`
	PaperYear  string `json:"paper_year"`
	StepID     int64  `json:"step_id"`
	Objective  string `json:"objective"`
	MethodName string `json:"method_name"`
	Conclusion string `json:"conclusion"`
}

// RetrieveBestPractices returns analysis steps whose objective or conclusion
// mentions the keyword, newest papers first.
func (s *Store) RetrieveBestPractices(ctx context.Context, keyword string, limit int) ([]BestPractice, error) {
	if limit <= 0 {
		limit = 10
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Paper)-[:CONDUCTS]->(ae:AnalysisEvent)
		WHERE toLower(ae.objective) CONTAINS toLower($keyword)
		   OR toLower(ae.derived_conclusion) CONTAINS toLower($keyword)
		OPTIONAL MATCH (ae)-[:EXECUTES]->(m:Method)
		RETURN p.title AS title, p.year AS year,
		       ae.step_id AS step_id, ae.objective AS objective,
		       m.name AS method, ae.derived_conclusion AS conclusion
		ORDER BY p.year DESC, ae.step_id
		LIMIT $limit
	`

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{
			"keyword": keyword,
			"limit":   limit,
		})
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("best practice query failed: %w", err)
	}

	var practices []BestPractice
	for _, record := range records.([]*neo4j.Record) {
		practices = append(practices, BestPractice{
			PaperTitle: stringValue(record, "title"),
			PaperYear:  stringValue(record, "year"),
			StepID:     intValue(record, "step_id"),
			Objective:  stringValue(record, "objective"),
			MethodName: stringValue(record, "method"),
			Conclusion: stringValue(record, "conclusion"),
		})
	}
	return practices, nil
}

// GraphStats summarizes the graph: per-label node counts and per-type
// relationship counts.
type GraphStats struct {
	Nodes         map[string]int64 `json:"nodes"`
	Relationships map[string]int64 `json:"relationships"`
}

// Stats counts nodes by label and relationships by type.
func (s *Store) Stats(ctx context.Context) (*GraphStats, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	stats := &GraphStats{
		Nodes:         map[string]int64{},
		Relationships: map[string]int64{},
	}

	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		nodes, err := tx.Run(ctx, `
			MATCH (n)
			RETURN labels(n)[0] AS label, count(n) AS count
			ORDER BY count DESC
		`, nil)
		if err != nil {
			return nil, err
		}
		nodeRecords, err := nodes.Collect(ctx)
		if err != nil {
			return nil, err
		}
		for _, record := range nodeRecords {
			stats.Nodes[stringValue(record, "label")] = intValue(record, "count")
		}

		rels, err := tx.Run(ctx, `
			MATCH ()-[r]->()
			RETURN type(r) AS type, count(r) AS count
			ORDER BY count DESC
		`, nil)
		if err != nil {
			return nil, err
		}
		relRecords, err := rels.Collect(ctx)
		if err != nil {
			return nil, err
		}
		for _, record := range relRecords {
			stats.Relationships[stringValue(record, "type")] = intValue(record, "count")
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}
	return stats, nil
}

func stringValue(record *neo4j.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}

func intValue(record *neo4j.Record, key string) int64 {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return 0
	}
	n, _ := value.(int64)
	return n
}
