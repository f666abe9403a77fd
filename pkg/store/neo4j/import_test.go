package neo4j

import "testing"

func TestClassifyConclusion(t *testing.T) {
	tests := []struct {
		name       string
		conclusion string
		want       string
	}{
		{"english gap", "This reveals a research gap in green hydrogen storage", ConclusionGap},
		{"chinese gap", "结果显示存在技术空白", ConclusionGap},
		{"english trend", "Filings show an accelerating upward trend", ConclusionTrend},
		{"chinese trend", "专利申请呈上升趋势", ConclusionTrend},
		{"english effectiveness", "The method proved effective on held-out data", ConclusionEffectiveness},
		{"chinese effectiveness", "该方法被证明有效", ConclusionEffectiveness},
		{"plain finding", "IPC entropy averages 2.3 across the sample", ConclusionGeneral},
		{"gap beats trend", "A gap in the trend literature", ConclusionGap},
		{"case insensitive", "A clear GAP was identified", ConclusionGap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyConclusion(tt.conclusion); got != tt.want {
				t.Errorf("ClassifyConclusion(%q) = %q, want %q", tt.conclusion, got, tt.want)
			}
		})
	}
}
