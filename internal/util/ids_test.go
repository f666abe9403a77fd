package util

import "testing"

func TestIsUnmappedVariable(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"unmapped_patent_families", true},
		{"V03_rd_investment", false},
		{"", false},
		{"unmapped_", true},
	}

	for _, tt := range tests {
		if got := IsUnmappedVariable(tt.id); got != tt.want {
			t.Errorf("IsUnmappedVariable(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSlugifyVariableID(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"simple", "R&D Investment", "r_d_investment"},
		{"collapses runs", "tech --- impact", "tech_impact"},
		{"trims edges", "  citation count  ", "citation_count"},
		{"already clean", "ipc_entropy", "ipc_entropy"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugifyVariableID(tt.label); got != tt.want {
				t.Errorf("SlugifyVariableID(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
