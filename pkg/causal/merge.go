package causal

import (
	"time"
)

// MergeResult reports what a merge changed.
type MergeResult struct {
	NewVariables int `json:"new_variables"`
	NewPaths     int `json:"new_paths"`
	Reinforced   int `json:"reinforced"`
}

// Merge folds an extracted fragment into the ontology. New variables and
// paths are appended; a path that already exists (same source, target and
// effect type) has its evidence count incremented instead of being
// duplicated. Meta counts and LastUpdated are rewritten; Version is
// preserved.
func Merge(ontology *Ontology, fragment *Ontology, now time.Time) MergeResult {
	result := MergeResult{}

	known := make(map[string]bool, len(ontology.Variables))
	for _, v := range ontology.Variables {
		known[v.ID] = true
	}

	for _, v := range fragment.Variables {
		if known[v.ID] {
			continue
		}
		known[v.ID] = true
		ontology.Variables = append(ontology.Variables, v)
		result.NewVariables++
	}

	type pathKey struct {
		source, target, effectType string
	}
	existing := make(map[pathKey]int, len(ontology.CausalPaths))
	for i, p := range ontology.CausalPaths {
		existing[pathKey{p.Source, p.Target, p.EffectType}] = i
	}

	for _, p := range fragment.CausalPaths {
		key := pathKey{p.Source, p.Target, p.EffectType}
		if i, ok := existing[key]; ok {
			count := p.Evidence.EvidenceCount
			if count <= 0 {
				count = 1
			}
			ontology.CausalPaths[i].Evidence.EvidenceCount += count
			if ontology.CausalPaths[i].Mechanism == "" {
				ontology.CausalPaths[i].Mechanism = p.Mechanism
			}
			result.Reinforced++
			continue
		}
		if p.Evidence.EvidenceCount <= 0 {
			p.Evidence.EvidenceCount = 1
		}
		existing[key] = len(ontology.CausalPaths)
		ontology.CausalPaths = append(ontology.CausalPaths, p)
		result.NewPaths++
	}

	ontology.Meta.TotalVariables = len(ontology.Variables)
	ontology.Meta.TotalPaths = len(ontology.CausalPaths)
	ontology.Meta.LastUpdated = now.Format("2006-01-02")

	return result
}
