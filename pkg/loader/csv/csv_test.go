package csv

import (
	"testing"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "simple rows",
			input: "a,b,c\n1,2,3\n",
			want:  "a,b,c\n1,2,3\n",
		},
		{
			name:  "skips empty rows",
			input: "a,b\n,\n\n1,2\n",
			want:  "a,b\n1,2\n",
		},
		{
			name:  "quotes fields with commas",
			input: "name,desc\nfoo,\"one, two\"\n",
			want:  "name,desc\nfoo,\"one, two\"\n",
		},
		{
			name:  "escapes embedded quotes",
			input: "name\n\"say \"\"hi\"\"\"\n",
			want:  "name\n\"say \"\"hi\"\"\"\n",
		},
		{
			name:  "ragged rows kept",
			input: "a,b,c\n1,2\n",
			want:  "a,b,c\n1,2\n",
		},
		{
			name:    "empty content",
			input:   "",
			wantErr: true,
		},
		{
			name:    "only blank rows",
			input:   ",,\n,\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCSV() expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCSV() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ParseCSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecords(t *testing.T) {
	rows, err := Records([]byte("公开号,IPC分类号\nCN1001,A01B\nCN1002,\"A01B, C02F\"\n"))
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "公开号" {
		t.Errorf("expected header 公开号, got %q", rows[0][0])
	}
	if rows[2][1] != "A01B, C02F" {
		t.Errorf("expected quoted field preserved, got %q", rows[2][1])
	}

	if _, err := Records(nil); err == nil {
		t.Error("expected error for empty content")
	}
}
