package causal

import (
	"strings"
	"testing"
)

func TestSuggestHypotheses(t *testing.T) {
	q := NewQuery(queryOntology())

	got := q.SuggestHypotheses("what drives patent quality", 10)
	if len(got) == 0 {
		t.Fatal("SuggestHypotheses() returned nothing")
	}

	// descending by score
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted: score[%d]=%d > score[%d]=%d",
				i, got[i].Score, i-1, got[i-1].Score)
		}
	}

	// every suggested path must touch the goal somehow
	for _, h := range got {
		if h.Score <= 0 {
			t.Errorf("zero-score hypothesis returned: %s -> %s", h.Path.Source, h.Path.Target)
		}
	}
}

func TestSuggestHypothesesTopK(t *testing.T) {
	q := NewQuery(queryOntology())

	all := q.SuggestHypotheses("patent", 0)
	limited := q.SuggestHypotheses("patent", 2)

	if len(limited) != 2 {
		t.Errorf("topK=2 returned %d results", len(limited))
	}
	if len(all) < len(limited) {
		t.Errorf("topK=0 returned fewer results (%d) than topK=2 (%d)", len(all), len(limited))
	}
	// the limited slice keeps the best-scored entries
	if limited[0].Score != all[0].Score {
		t.Errorf("top result differs: %d vs %d", limited[0].Score, all[0].Score)
	}
}

func TestSuggestHypothesesSkipsUnknownVariables(t *testing.T) {
	ontology := queryOntology()
	ontology.CausalPaths = append(ontology.CausalPaths, CausalPath{
		Source: "unmapped_ghost", Target: "patent_quality", EffectType: EffectPositive,
	})
	q := NewQuery(ontology)

	for _, h := range q.SuggestHypotheses("patent quality", 0) {
		if h.Path.Source == "unmapped_ghost" {
			t.Error("hypothesis built from path with unknown source variable")
		}
	}
}

func TestFormatHypothesis(t *testing.T) {
	q := NewQuery(queryOntology())

	path := CausalPath{
		Source:     "rd_intensity",
		Target:     "patent_quality",
		EffectType: EffectInvertedU,
		EffectSize: "β=0.32",
		Mechanism:  "diminishing returns to search",
		Evidence:   Evidence{EvidenceCount: 7},
	}

	got := q.FormatHypothesis(path)

	wantParts := []string{
		"H: R&D intensity has an inverted U-shaped effect on Patent quality",
		"(effect size: β=0.32)",
		"Mechanism: diminishing returns to search",
		"supported by 7 papers",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("FormatHypothesis() missing %q in:\n%s", part, got)
		}
	}
}

func TestFormatHypothesisMinimal(t *testing.T) {
	q := NewQuery(queryOntology())

	got := q.FormatHypothesis(CausalPath{
		Source:     "rd_intensity",
		Target:     "patent_output",
		EffectType: EffectPositive,
	})

	if strings.Contains(got, "effect size") || strings.Contains(got, "Mechanism") ||
		strings.Contains(got, "Evidence") {
		t.Errorf("FormatHypothesis() rendered optional sections for empty fields:\n%s", got)
	}
}
