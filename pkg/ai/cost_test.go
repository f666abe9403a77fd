package ai

import (
	"testing"
)

func TestEstimateBatch(t *testing.T) {
	est, err := EstimateBatch(EstimateParams{
		Model:        "gpt-4o-mini",
		SamplePrompt: "R&D intensity raises patent output through accumulated absorptive capacity.",
		Papers:       10,
	})
	if err != nil {
		t.Fatalf("EstimateBatch() error = %v", err)
	}

	if est.Papers != 10 {
		t.Errorf("Papers = %d, want 10", est.Papers)
	}
	if est.InputTokens != est.TokensPerPaperIn*10 {
		t.Errorf("InputTokens = %d, want %d", est.InputTokens, est.TokensPerPaperIn*10)
	}
	if est.OutputTokens != 8000 {
		t.Errorf("OutputTokens = %d, want 8000 (default 800 per paper)", est.OutputTokens)
	}
	if est.CostUSD <= 0 {
		t.Errorf("CostUSD = %f, want positive for a priced model", est.CostUSD)
	}
	if est.SerialSeconds != 200 {
		t.Errorf("SerialSeconds = %f, want 200 (default 20s per paper)", est.SerialSeconds)
	}
	if est.ParallelSeconds != 50 {
		t.Errorf("ParallelSeconds = %f, want 50 (4 workers)", est.ParallelSeconds)
	}
}

func TestEstimateBatchUnknownModelIsFree(t *testing.T) {
	est, err := EstimateBatch(EstimateParams{
		Model:        "qwen2.5:7b",
		SamplePrompt: "text",
		Papers:       5,
	})
	if err != nil {
		t.Fatalf("EstimateBatch() error = %v", err)
	}
	if est.CostUSD != 0 {
		t.Errorf("CostUSD = %f, want 0 for unpriced local model", est.CostUSD)
	}
}

func TestEstimateBatchRejectsZeroPapers(t *testing.T) {
	if _, err := EstimateBatch(EstimateParams{Model: "gpt-4o", Papers: 0}); err == nil {
		t.Error("EstimateBatch() expected error for zero papers")
	}
}

func TestLookupPricingVersionedName(t *testing.T) {
	p, ok := lookupPricing("gpt-4o-2024-08-06")
	if !ok {
		t.Fatal("lookupPricing() did not match versioned model name")
	}
	if p != DefaultPricing["gpt-4o"] {
		t.Errorf("lookupPricing() = %+v, want gpt-4o pricing", p)
	}
}
