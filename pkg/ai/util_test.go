package ai

import "testing"

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sample
	}{
		{
			name:  "standard json",
			input: `{"name": "ipc", "count": 3}`,
			want:  sample{Name: "ipc", Count: 3},
		},
		{
			name:  "fenced json",
			input: "```json\n{\"name\": \"ipc\", \"count\": 3}\n```",
			want:  sample{Name: "ipc", Count: 3},
		},
		{
			name:  "double encoded",
			input: `"{\"name\": \"ipc\", \"count\": 3}"`,
			want:  sample{Name: "ipc", Count: 3},
		},
		{
			name:  "malformed but repairable",
			input: `{name: "ipc", count: 3,}`,
			want:  sample{Name: "ipc", Count: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			if err := UnmarshalFlexible(tt.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UnmarshalFlexible() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalFlexibleRejectsGarbage(t *testing.T) {
	var got sample
	if err := UnmarshalFlexible("not json at all {{{", &got); err == nil {
		t.Error("UnmarshalFlexible() expected error for unparseable input")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.input); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
