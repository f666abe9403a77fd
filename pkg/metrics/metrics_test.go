package metrics

import "testing"

func patentFrame(t *testing.T, columns map[string][]string) *Frame {
	t.Helper()
	frame, err := NewFrame(columns)
	if err != nil {
		t.Fatal(err)
	}
	return frame
}

func TestNewFrameRejectsRaggedColumns(t *testing.T) {
	_, err := NewFrame(map[string][]string{
		ColIPC:        {"H01L", "G06F"},
		ColCitedCount: {"3"},
	})
	if err == nil {
		t.Error("NewFrame() expected error for unequal column lengths")
	}
}

func TestTechIntensity(t *testing.T) {
	frame := patentFrame(t, map[string][]string{
		ColPublicationNumber: {"CN101", "CN102", "CN103"},
	})
	if got := TechIntensity(frame); got != 3 {
		t.Errorf("TechIntensity() = %v, want 3", got)
	}
}

func TestTechIndependence(t *testing.T) {
	tests := []struct {
		name    string
		columns map[string][]string
		want    float64
	}{
		{
			name:    "mean rounded to 4 decimals",
			columns: map[string][]string{ColCitationCountry: {"1", "0", "1"}},
			want:    0.6667,
		},
		{
			name:    "missing column defaults to zero",
			columns: map[string][]string{ColIPC: {"H01L"}},
			want:    0,
		},
		{
			name:    "non-numeric values skipped",
			columns: map[string][]string{ColCitationCountry: {"2", "n/a", "4"}},
			want:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := patentFrame(t, tt.columns)
			if got := TechIndependence(frame); got != tt.want {
				t.Errorf("TechIndependence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIPCEntropy(t *testing.T) {
	tests := []struct {
		name    string
		columns map[string][]string
		want    float64
	}{
		{
			name:    "single class has zero entropy",
			columns: map[string][]string{ColIPC: {"H01L", "H01L", "H01L"}},
			want:    0,
		},
		{
			name:    "two equal classes",
			columns: map[string][]string{ColIPC: {"H01L", "G06F", "H01L", "G06F"}},
			want:    1,
		},
		{
			name:    "four equal classes",
			columns: map[string][]string{ColIPC: {"A", "B", "C", "D"}},
			want:    2,
		},
		{
			name:    "missing column defaults to zero",
			columns: map[string][]string{ColCitedCount: {"1"}},
			want:    0,
		},
		{
			name:    "empty values ignored",
			columns: map[string][]string{ColIPC: {"", "", ""}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := patentFrame(t, tt.columns)
			if got := IPCEntropy(frame); got != tt.want {
				t.Errorf("IPCEntropy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	frame := patentFrame(t, map[string][]string{
		ColIPC:             {"H01L", "G06F", "H01L"},
		ColCitationCountry: {"1", "1", "0"},
	})

	for range 3 {
		entropy, err := Compute("calc_ipc_entropy", frame)
		if err != nil {
			t.Fatal(err)
		}
		if entropy != 0.9183 {
			t.Errorf("calc_ipc_entropy = %v, want 0.9183", entropy)
		}
	}
}

func TestComputeUnknownMetric(t *testing.T) {
	frame := patentFrame(t, nil)
	if _, err := Compute("calc_nonexistent", frame); err == nil {
		t.Error("Compute() expected error for unknown metric")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"calc_ipc_entropy", "calc_tech_independence", "calc_tech_intensity"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
