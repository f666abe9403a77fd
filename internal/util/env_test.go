package util

import "testing"

func TestGetEnvNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  float64
	}{
		{name: "unset returns default", want: 30},
		{name: "parses integer", value: "120", set: true, want: 120},
		{name: "parses float", value: "7.5", set: true, want: 7.5},
		{name: "garbage returns default", value: "soon", set: true, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("DOWNLOAD_TIMEOUT_SECONDS", tt.value)
			}
			if got := GetEnvNumeric("DOWNLOAD_TIMEOUT_SECONDS", 30); got != tt.want {
				t.Errorf("GetEnvNumeric() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvString(t *testing.T) {
	if got := GetEnvString("PATENTGRAPH_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	t.Setenv("PATENTGRAPH_MISSING_KEY", "set")
	if got := GetEnvString("PATENTGRAPH_MISSING_KEY", "fallback"); got != "set" {
		t.Errorf("expected set, got %q", got)
	}
}
