package causal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testOntology() *Ontology {
	return &Ontology{
		Variables: []Variable{
			{ID: "rd_intensity", Label: "R&D intensity", Category: CategoryInput},
			{ID: "patent_output", Label: "Patent output", Category: CategoryOutcome},
			{ID: "absorptive_capacity", Label: "Absorptive capacity", Category: CategoryMediator},
		},
		CausalPaths: []CausalPath{
			{Source: "rd_intensity", Target: "patent_output", EffectType: EffectPositive},
			{Source: "rd_intensity", Target: "absorptive_capacity", EffectType: EffectPositive},
			{Source: "unmapped_firm_size", Target: "patent_output", EffectType: EffectPositive},
			{Source: "absorptive_capacity", Target: "unmapped_quality", EffectType: EffectPositive},
			{Source: "unmapped_a", Target: "unmapped_b", EffectType: EffectNegative},
		},
		Meta: Meta{
			Version:        "2.1",
			TotalVariables: 99,
			TotalPaths:     99,
		},
	}
}

func TestClean(t *testing.T) {
	ontology := testOntology()
	now := time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC)

	result := Clean(ontology, now)

	if result.Kept != 2 {
		t.Errorf("Kept = %d, want 2", result.Kept)
	}
	if result.Removed != 3 {
		t.Errorf("Removed = %d, want 3", result.Removed)
	}
	if len(ontology.CausalPaths) != 2 {
		t.Fatalf("remaining paths = %d, want 2", len(ontology.CausalPaths))
	}
	// invariant: every surviving path references existing variables
	valid := map[string]bool{}
	for _, v := range ontology.Variables {
		valid[v.ID] = true
	}
	for _, p := range ontology.CausalPaths {
		if !valid[p.Source] || !valid[p.Target] {
			t.Errorf("surviving path %s -> %s references unknown variable", p.Source, p.Target)
		}
	}
}

func TestCleanRewritesMeta(t *testing.T) {
	ontology := testOntology()
	now := time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC)

	Clean(ontology, now)

	if ontology.Meta.Version != "2.1" {
		t.Errorf("Version = %q, want preserved %q", ontology.Meta.Version, "2.1")
	}
	if ontology.Meta.TotalVariables != 3 {
		t.Errorf("TotalVariables = %d, want 3", ontology.Meta.TotalVariables)
	}
	if ontology.Meta.TotalPaths != 2 {
		t.Errorf("TotalPaths = %d, want 2", ontology.Meta.TotalPaths)
	}
	if ontology.Meta.LastUpdated != "2026-08-31" {
		t.Errorf("LastUpdated = %q, want %q", ontology.Meta.LastUpdated, "2026-08-31")
	}

	if len(ontology.Meta.CleaningHistory) != 1 {
		t.Fatalf("CleaningHistory length = %d, want 1", len(ontology.Meta.CleaningHistory))
	}
	record := ontology.Meta.CleaningHistory[0]
	if record.Action != "remove_unmapped_paths" {
		t.Errorf("Action = %q, want remove_unmapped_paths", record.Action)
	}
	if record.OriginalPaths != 5 || record.CleanedPaths != 2 || record.RemovedPaths != 3 {
		t.Errorf("record counts = %d/%d/%d, want 5/2/3",
			record.OriginalPaths, record.CleanedPaths, record.RemovedPaths)
	}
}

func TestCleanRemovalReasons(t *testing.T) {
	ontology := testOntology()
	result := Clean(ontology, time.Now())

	byPair := map[string][]string{}
	for _, d := range result.Dropped {
		byPair[d.Source+"|"+d.Target] = d.Reasons
	}

	tests := []struct {
		name string
		key  string
		want []string
	}{
		{"bad source", "unmapped_firm_size|patent_output", []string{"source=unmapped_firm_size"}},
		{"bad target", "absorptive_capacity|unmapped_quality", []string{"target=unmapped_quality"}},
		{"both bad", "unmapped_a|unmapped_b", []string{"source=unmapped_a", "target=unmapped_b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := byPair[tt.key]
			if !ok {
				t.Fatalf("pair %s not reported as dropped", tt.key)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("reasons = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("reason[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	ontology := testOntology()
	Clean(ontology, time.Now())
	second := Clean(ontology, time.Now())

	if second.Removed != 0 {
		t.Errorf("second pass Removed = %d, want 0", second.Removed)
	}
	if len(ontology.Meta.CleaningHistory) != 2 {
		t.Errorf("CleaningHistory length = %d, want 2 (appended, not replaced)",
			len(ontology.Meta.CleaningHistory))
	}
}

func TestCleanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ontology.json")

	if err := Save(path, testOntology()); err != nil {
		t.Fatal(err)
	}

	result, err := CleanFile(path)
	if err != nil {
		t.Fatalf("CleanFile() error = %v", err)
	}

	if result.BackupPath == "" {
		t.Fatal("BackupPath is empty")
	}
	name := filepath.Base(result.BackupPath)
	if !strings.HasPrefix(name, "ontology_backup_") || !strings.HasSuffix(name, ".json") {
		t.Errorf("backup name = %q, want ontology_backup_<timestamp>.json", name)
	}
	if _, err := os.Stat(result.BackupPath); err != nil {
		t.Errorf("backup file missing: %v", err)
	}

	// the backup holds the pre-clean path count
	backup, err := Load(result.BackupPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(backup.CausalPaths) != 5 {
		t.Errorf("backup paths = %d, want original 5", len(backup.CausalPaths))
	}

	cleaned, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cleaned.CausalPaths) != 2 {
		t.Errorf("cleaned paths = %d, want 2", len(cleaned.CausalPaths))
	}
}
