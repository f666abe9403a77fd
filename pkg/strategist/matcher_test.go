package strategist

import (
	"testing"

	"github.com/yppgo/patentgraph/pkg/causal"
)

func matcherOntology() *causal.Ontology {
	return &causal.Ontology{
		Variables: []causal.Variable{
			{ID: "intl_collaboration", Label: "International collaboration", Category: causal.CategoryInput,
				Definition: "Share of patents with foreign co-inventors"},
			{ID: "tech_independence", Label: "Technology independence", Category: causal.CategoryMediator,
				Definition: "Reliance on self-citations over foreign citations"},
			{ID: "patent_value", Label: "Patent value", Category: causal.CategoryOutcome,
				Definition: "Economic value of the patent portfolio"},
			{ID: "tech_impact", Label: "Technology impact", Category: causal.CategoryOutcome,
				Definition: "Forward citation influence of granted patents"},
			{ID: "ip_regime", Label: "IP regime strength", Category: causal.CategoryModerator,
				Definition: "Strength of enforcement"},
		},
		CausalPaths: []causal.CausalPath{
			{Source: "intl_collaboration", Target: "tech_independence", EffectType: causal.EffectPositive},
			{Source: "tech_independence", Target: "patent_value", EffectType: causal.EffectPositive},
			{Source: "intl_collaboration", Target: "patent_value", EffectType: causal.EffectPositive},
		},
	}
}

func TestIdentifyIntent(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What factors impact patent value?", IntentImpactDrivers},
		{"什么因素影响技术影响力？", IntentImpactDrivers},
		{"国际合作如何提升专利价值？", IntentMechanism},
		{"Compare the two portfolios", IntentComparison},
		{"Predict next year's filings", IntentPrediction},
		{"Measure portfolio quality", IntentEvaluation},
		{"patents", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := IdentifyIntent(tt.question); got != tt.want {
				t.Errorf("IdentifyIntent(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("What drives the patent value?")

	want := map[string]bool{"drives": true, "patent": true, "value": true}
	for _, kw := range got {
		if kw == "the" || kw == "what" {
			t.Errorf("stopword %q survived extraction", kw)
		}
		delete(want, kw)
	}
	if len(want) != 0 {
		t.Errorf("keywords %v missing from %v", want, got)
	}
}

func TestMatchQuestion(t *testing.T) {
	m := NewMatcher(matcherOntology())

	match := m.MatchQuestion("What factors impact patent value?")

	if match.Intent != IntentImpactDrivers {
		t.Errorf("Intent = %q", match.Intent)
	}
	if match.Outcome.ID != "patent_value" {
		t.Errorf("Outcome = %q, want patent_value", match.Outcome.ID)
	}

	predictorIDs := map[string]bool{}
	for _, v := range match.Predictors {
		predictorIDs[v.ID] = true
	}
	if !predictorIDs["intl_collaboration"] || !predictorIDs["tech_independence"] {
		t.Errorf("Predictors = %v, want sources of paths into patent_value", predictorIDs)
	}

	if len(match.Moderators) != 1 || match.Moderators[0].ID != "ip_regime" {
		t.Errorf("Moderators = %v, want ip_regime", match.Moderators)
	}
}

func TestMatchQuestionRecommendsMediation(t *testing.T) {
	m := NewMatcher(matcherOntology())

	match := m.MatchQuestion("What factors impact patent value?")

	var direct, mediation int
	for _, p := range match.Paths {
		switch p.Type {
		case "direct":
			direct++
		case "mediation":
			mediation++
			if p.First.Source != "intl_collaboration" || p.Second.Target != "patent_value" {
				t.Errorf("mediation chain = %s -> %s -> %s",
					p.First.Source, p.First.Target, p.Second.Target)
			}
		}
	}
	if direct != 2 {
		t.Errorf("direct paths = %d, want 2", direct)
	}
	if mediation != 1 {
		t.Errorf("mediation paths = %d, want 1", mediation)
	}
}

func TestMatchPredictorsFallback(t *testing.T) {
	ontology := matcherOntology()
	// no paths at all: fall back to input and mediator variables
	ontology.CausalPaths = nil
	m := NewMatcher(ontology)

	match := m.MatchQuestion("What factors impact patent value?")
	if len(match.Predictors) == 0 {
		t.Fatal("expected fallback predictors with no causal paths")
	}
	for _, v := range match.Predictors {
		if v.Category != causal.CategoryInput && v.Category != causal.CategoryMediator {
			t.Errorf("fallback predictor %q has category %q", v.ID, v.Category)
		}
	}
}
