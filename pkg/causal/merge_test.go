package causal

import (
	"testing"
	"time"
)

func TestMerge(t *testing.T) {
	ontology := &Ontology{
		Variables: []Variable{
			{ID: "rd_intensity", Label: "R&D intensity"},
			{ID: "patent_output", Label: "Patent output"},
		},
		CausalPaths: []CausalPath{
			{Source: "rd_intensity", Target: "patent_output", EffectType: EffectPositive,
				Evidence: Evidence{EvidenceCount: 2}},
		},
		Meta: Meta{Version: "1.0"},
	}

	fragment := &Ontology{
		Variables: []Variable{
			{ID: "rd_intensity", Label: "R&D intensity"}, // duplicate
			{ID: "firm_size", Label: "Firm size"},
		},
		CausalPaths: []CausalPath{
			// reinforces the existing edge
			{Source: "rd_intensity", Target: "patent_output", EffectType: EffectPositive,
				Evidence: Evidence{EvidenceCount: 1}},
			// new edge
			{Source: "firm_size", Target: "patent_output", EffectType: EffectInvertedU},
		},
	}

	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	result := Merge(ontology, fragment, now)

	if result.NewVariables != 1 {
		t.Errorf("NewVariables = %d, want 1", result.NewVariables)
	}
	if result.NewPaths != 1 {
		t.Errorf("NewPaths = %d, want 1", result.NewPaths)
	}
	if result.Reinforced != 1 {
		t.Errorf("Reinforced = %d, want 1", result.Reinforced)
	}

	if len(ontology.Variables) != 3 {
		t.Errorf("variables = %d, want 3", len(ontology.Variables))
	}
	if len(ontology.CausalPaths) != 2 {
		t.Errorf("paths = %d, want 2", len(ontology.CausalPaths))
	}
	if ontology.CausalPaths[0].Evidence.EvidenceCount != 3 {
		t.Errorf("reinforced evidence count = %d, want 3",
			ontology.CausalPaths[0].Evidence.EvidenceCount)
	}
	if ontology.Meta.Version != "1.0" {
		t.Errorf("Version = %q, want preserved 1.0", ontology.Meta.Version)
	}
	if ontology.Meta.TotalVariables != 3 || ontology.Meta.TotalPaths != 2 {
		t.Errorf("meta counts = %d/%d, want 3/2",
			ontology.Meta.TotalVariables, ontology.Meta.TotalPaths)
	}
	if ontology.Meta.LastUpdated != "2026-08-31" {
		t.Errorf("LastUpdated = %q, want 2026-08-31", ontology.Meta.LastUpdated)
	}
}

func TestMergeSameEdgeDifferentEffectType(t *testing.T) {
	ontology := &Ontology{
		Variables: []Variable{{ID: "a"}, {ID: "b"}},
		CausalPaths: []CausalPath{
			{Source: "a", Target: "b", EffectType: EffectPositive, Evidence: Evidence{EvidenceCount: 1}},
		},
	}
	fragment := &Ontology{
		CausalPaths: []CausalPath{
			{Source: "a", Target: "b", EffectType: EffectNegative},
		},
	}

	result := Merge(ontology, fragment, time.Now())

	// conflicting directions are kept side by side, not collapsed
	if result.NewPaths != 1 || result.Reinforced != 0 {
		t.Errorf("NewPaths/Reinforced = %d/%d, want 1/0", result.NewPaths, result.Reinforced)
	}
	if len(ontology.CausalPaths) != 2 {
		t.Errorf("paths = %d, want 2", len(ontology.CausalPaths))
	}
}

func TestMergeFillsMissingMechanism(t *testing.T) {
	ontology := &Ontology{
		Variables: []Variable{{ID: "a"}, {ID: "b"}},
		CausalPaths: []CausalPath{
			{Source: "a", Target: "b", EffectType: EffectPositive, Evidence: Evidence{EvidenceCount: 1}},
		},
	}
	fragment := &Ontology{
		CausalPaths: []CausalPath{
			{Source: "a", Target: "b", EffectType: EffectPositive, Mechanism: "learning effects",
				Evidence: Evidence{EvidenceCount: 1}},
		},
	}

	Merge(ontology, fragment, time.Now())

	if ontology.CausalPaths[0].Mechanism != "learning effects" {
		t.Errorf("Mechanism = %q, want filled from fragment", ontology.CausalPaths[0].Mechanism)
	}
}
