package strategist

import (
	"context"
	"sort"
	"strings"

	"github.com/yppgo/patentgraph/internal/util"
	"github.com/yppgo/patentgraph/pkg/ai"
	"github.com/yppgo/patentgraph/pkg/causal"
)

// Research intents a query can express.
const (
	IntentImpactDrivers = "impact_drivers"
	IntentMechanism     = "mechanism"
	IntentComparison    = "comparison"
	IntentPrediction    = "prediction"
	IntentEvaluation    = "evaluation"
	IntentGeneral       = "general"
)

// intentPatterns maps an intent to the phrases that signal it. Checked in a
// fixed order so overlapping queries resolve deterministically.
var intentOrder = []string{
	IntentImpactDrivers, IntentMechanism, IntentComparison,
	IntentPrediction, IntentEvaluation,
}

var intentPatterns = map[string][]string{
	IntentImpactDrivers: {"影响", "驱动", "因素", "决定", "impact", "driver", "factor"},
	IntentMechanism:     {"如何", "机制", "过程", "how", "mechanism", "process"},
	IntentComparison:    {"比较", "差异", "对比", "compare", "difference"},
	IntentPrediction:    {"预测", "趋势", "未来", "predict", "trend", "future"},
	IntentEvaluation:    {"评估", "测量", "衡量", "evaluate", "measure", "assess"},
}

var stopwords = map[string]bool{
	"的": true, "是": true, "在": true, "有": true, "和": true,
	"与": true, "对": true, "等": true, "及": true, "或": true,
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"is": true, "are": true, "what": true, "does": true,
}

// RecommendedPath is a causal path relevant to a matched question, either a
// direct predictor → outcome edge or a two-hop mediation chain.
type RecommendedPath struct {
	Type   string            `json:"type"` // "direct" or "mediation"
	Direct causal.CausalPath `json:"direct,omitempty"`
	First  causal.CausalPath `json:"first,omitempty"`
	Second causal.CausalPath `json:"second,omitempty"`
}

// Match is the result of resolving a research question against the ontology.
type Match struct {
	Question   string            `json:"user_question"`
	Intent     string            `json:"intent"`
	Keywords   []string          `json:"keywords"`
	Outcome    causal.Variable   `json:"outcome_variable"`
	Predictors []causal.Variable `json:"predictor_variables"`
	Moderators []causal.Variable `json:"moderator_variables"`
	Paths      []RecommendedPath `json:"relevant_paths"`
}

// Matcher resolves free-text research questions to ontology variables.
type Matcher struct {
	ontology  *causal.Ontology
	variables map[string]causal.Variable
}

// NewMatcher indexes the ontology for question matching.
func NewMatcher(ontology *causal.Ontology) *Matcher {
	variables := make(map[string]causal.Variable, len(ontology.Variables))
	for _, v := range ontology.Variables {
		variables[v.ID] = v
	}
	return &Matcher{ontology: ontology, variables: variables}
}

// MatchQuestion identifies the question's intent, extracts keywords with the
// rule-based extractor, and matches the outcome, predictor and moderator
// variables plus the causal paths worth testing.
func (m *Matcher) MatchQuestion(question string) Match {
	return m.match(question, ExtractKeywords(question))
}

// MatchQuestionLLM is MatchQuestion with LLM keyword extraction. A nil
// client, a failed call or an empty keyword list falls back to the
// rule-based extractor.
func (m *Matcher) MatchQuestionLLM(ctx context.Context, client ai.Client, question string) Match {
	return m.match(question, ExtractKeywordsLLM(ctx, client, question))
}

func (m *Matcher) match(question string, keywords []string) Match {
	intent := IdentifyIntent(question)

	outcome := m.matchOutcome(keywords)
	predictors := m.matchPredictors(outcome)
	moderators := m.moderators()
	paths := m.recommendPaths(outcome, predictors)

	return Match{
		Question:   question,
		Intent:     intent,
		Keywords:   keywords,
		Outcome:    outcome,
		Predictors: predictors,
		Moderators: moderators,
		Paths:      paths,
	}
}

// IdentifyIntent classifies a research question by its phrasing.
func IdentifyIntent(question string) string {
	lower := strings.ToLower(question)
	for _, intent := range intentOrder {
		for _, pattern := range intentPatterns[intent] {
			if strings.Contains(lower, pattern) {
				return intent
			}
		}
	}
	return IntentGeneral
}

// ExtractKeywords splits a question into candidate keywords, dropping
// stop words and single characters.
func ExtractKeywords(question string) []string {
	replacer := strings.NewReplacer("？", " ", "?", " ", "，", " ", ",", " ")
	words := strings.Fields(replacer.Replace(question))

	var keywords []string
	for _, w := range words {
		w = strings.ToLower(w)
		if stopwords[w] || len([]rune(w)) <= 1 {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// matchOutcome scores every outcome variable by keyword hits on its label
// and definition; the best-scoring one wins, ties broken by graph order.
func (m *Matcher) matchOutcome(keywords []string) causal.Variable {
	var outcomes []causal.Variable
	for _, v := range m.ontology.Variables {
		if v.Category != causal.CategoryOutcome || util.IsUnmappedVariable(v.ID) {
			continue
		}
		outcomes = append(outcomes, v)
	}
	if len(outcomes) == 0 {
		return causal.Variable{}
	}

	type scored struct {
		v     causal.Variable
		score int
	}
	ranked := make([]scored, 0, len(outcomes))
	for _, v := range outcomes {
		text := strings.ToLower(v.Label + " " + v.Definition)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		ranked = append(ranked, scored{v, score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	return ranked[0].v
}

// matchPredictors returns the source variables of every path into the
// outcome. With no direct paths it falls back to the first five input and
// mediator variables.
func (m *Matcher) matchPredictors(outcome causal.Variable) []causal.Variable {
	var predictors []causal.Variable
	seen := map[string]bool{}
	for _, p := range m.ontology.CausalPaths {
		if p.Target != outcome.ID {
			continue
		}
		if v, ok := m.variables[p.Source]; ok && !seen[v.ID] {
			seen[v.ID] = true
			predictors = append(predictors, v)
		}
	}

	if len(predictors) == 0 {
		for _, v := range m.ontology.Variables {
			if v.Category == causal.CategoryInput || v.Category == causal.CategoryMediator {
				predictors = append(predictors, v)
				if len(predictors) == 5 {
					break
				}
			}
		}
	}
	return predictors
}

func (m *Matcher) moderators() []causal.Variable {
	var moderators []causal.Variable
	for _, v := range m.ontology.Variables {
		if v.Category == causal.CategoryModerator {
			moderators = append(moderators, v)
		}
	}
	return moderators
}

// recommendPaths collects direct predictor → outcome paths plus two-hop
// mediation chains predictor → mediator → outcome.
func (m *Matcher) recommendPaths(outcome causal.Variable, predictors []causal.Variable) []RecommendedPath {
	predictorIDs := map[string]bool{}
	for _, v := range predictors {
		predictorIDs[v.ID] = true
	}

	var paths []RecommendedPath
	for _, p := range m.ontology.CausalPaths {
		if predictorIDs[p.Source] && p.Target == outcome.ID {
			paths = append(paths, RecommendedPath{Type: "direct", Direct: p})
		}
		if predictorIDs[p.Source] && p.Target != outcome.ID {
			for _, p2 := range m.ontology.CausalPaths {
				if p2.Source == p.Target && p2.Target == outcome.ID {
					paths = append(paths, RecommendedPath{Type: "mediation", First: p, Second: p2})
				}
			}
		}
	}
	return paths
}
