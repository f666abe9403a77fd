package causal

import (
	"fmt"
	"sort"
	"strings"
)

// Hypothesis is a causal path scored against a research goal.
type Hypothesis struct {
	Score     int        `json:"score"`
	Path      CausalPath `json:"path"`
	SourceVar Variable   `json:"source_var"`
	TargetVar Variable   `json:"target_var"`
}

var effectText = map[string]string{
	EffectPositive:  "a positive effect",
	EffectNegative:  "a negative effect",
	EffectInvertedU: "an inverted U-shaped effect",
	EffectThreshold: "a threshold effect",
}

// SuggestHypotheses scores every path against the keywords of a free-text
// research goal and returns the topK best matches. Label hits weigh twice as
// much as definition hits; mechanism hits add one. Paths referencing unknown
// variables are skipped.
func (q *Query) SuggestHypotheses(goal string, topK int) []Hypothesis {
	keywords := strings.Fields(strings.ToLower(goal))

	var scored []Hypothesis
	for _, path := range q.ontology.CausalPaths {
		sourceVar, sourceOK := q.variables[path.Source]
		targetVar, targetOK := q.variables[path.Target]
		if !sourceOK || !targetOK {
			continue
		}

		score := 0
		for _, kw := range keywords {
			score += scoreVariable(sourceVar, kw)
			score += scoreVariable(targetVar, kw)
			if path.Mechanism != "" && strings.Contains(strings.ToLower(path.Mechanism), kw) {
				score++
			}
		}

		if score > 0 {
			scored = append(scored, Hypothesis{
				Score:     score,
				Path:      path,
				SourceVar: sourceVar,
				TargetVar: targetVar,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

func scoreVariable(v Variable, keyword string) int {
	score := 0
	if strings.Contains(strings.ToLower(v.Label), keyword) {
		score += 2
	}
	if strings.Contains(strings.ToLower(v.Definition), keyword) {
		score++
	}
	return score
}

// FormatHypothesis renders a causal path as a readable research hypothesis.
func (q *Query) FormatHypothesis(path CausalPath) string {
	sourceVar := q.variables[path.Source]
	targetVar := q.variables[path.Target]

	effect, ok := effectText[path.EffectType]
	if !ok {
		effect = path.EffectType
	}

	text := fmt.Sprintf("H: %s has %s on %s", sourceVar.Label, effect, targetVar.Label)
	if path.EffectSize != "" {
		text += fmt.Sprintf(" (effect size: %s)", path.EffectSize)
	}
	if path.Mechanism != "" {
		text += fmt.Sprintf("\n   Mechanism: %s", path.Mechanism)
	}
	if path.Evidence.EvidenceCount > 0 {
		text += fmt.Sprintf("\n   Evidence: supported by %d papers", path.Evidence.EvidenceCount)
	}

	return text
}
