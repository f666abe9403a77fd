// Package strategist turns a free-text research query into an ordered list
// of computation tasks by walking the causal graph.
package strategist

import (
	"fmt"

	"github.com/yppgo/patentgraph/pkg/causal"
	"github.com/yppgo/patentgraph/pkg/logger"
)

// PlanEdge is one hypothesized relationship the plan should verify, with the
// metric functions bound to both endpoints and the prompt template of the
// original path.
type PlanEdge struct {
	SourceLabel string `json:"source_label"`
	TargetLabel string `json:"target_label"`
	FuncSrc     string `json:"func_src"`
	FuncTgt     string `json:"func_tgt"`
	Template    string `json:"template"`
}

// Plan is the ordered task list built from a query. Tasks holds metric
// function names in first-seen order without duplicates.
type Plan struct {
	Query string     `json:"query"`
	Tasks []string   `json:"tasks"`
	Edges []PlanEdge `json:"edges"`
}

// Strategist builds analysis plans from a causal ontology.
type Strategist struct {
	ontology *causal.Ontology
}

// New returns a Strategist over the given ontology.
func New(ontology *causal.Ontology) *Strategist {
	return &Strategist{ontology: ontology}
}

// Analyze walks every causal path, resolves both endpoint variables and
// collects their bound metric functions into a deduplicated task list. A path
// referencing a variable the ontology does not define is an error naming the
// missing id; the cleaner normally prevents this.
func (s *Strategist) Analyze(query string) (*Plan, error) {
	logger.Info("[Strategist] Building plan", "query", query)

	plan := &Plan{
		Query: query,
		Tasks: []string{},
		Edges: []PlanEdge{},
	}

	seen := map[string]bool{}
	for _, path := range s.ontology.CausalPaths {
		sourceVar, err := s.resolve(path.Source)
		if err != nil {
			return nil, err
		}
		targetVar, err := s.resolve(path.Target)
		if err != nil {
			return nil, err
		}

		funcSrc := sourceVar.Binding.Func
		funcTgt := targetVar.Binding.Func

		if funcSrc != "" && !seen[funcSrc] {
			seen[funcSrc] = true
			plan.Tasks = append(plan.Tasks, funcSrc)
		}
		if funcTgt != "" && !seen[funcTgt] {
			seen[funcTgt] = true
			plan.Tasks = append(plan.Tasks, funcTgt)
		}

		plan.Edges = append(plan.Edges, PlanEdge{
			SourceLabel: sourceVar.Label,
			TargetLabel: targetVar.Label,
			FuncSrc:     funcSrc,
			FuncTgt:     funcTgt,
			Template:    path.Template,
		})
	}

	logger.Info("[Strategist] Plan complete", "tasks", len(plan.Tasks), "edges", len(plan.Edges))
	return plan, nil
}

// resolve returns the variable record for id by linear search, matching the
// graph file order (first match wins).
func (s *Strategist) resolve(id string) (causal.Variable, error) {
	for _, v := range s.ontology.Variables {
		if v.ID == id {
			return v, nil
		}
	}
	return causal.Variable{}, fmt.Errorf("causal path references unknown variable %q", id)
}
