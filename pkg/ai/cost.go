package ai

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Pricing holds the per-million-token rates for a model, in USD.
type Pricing struct {
	InputPerMillion  float64 `json:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million"`
}

// DefaultPricing covers the models the aggregator commonly serves. Local
// models run at zero cost.
var DefaultPricing = map[string]Pricing{
	"gpt-4o":        {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini":   {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4.1":       {InputPerMillion: 2.00, OutputPerMillion: 8.00},
	"gpt-4.1-mini":  {InputPerMillion: 0.40, OutputPerMillion: 1.60},
	"deepseek-chat": {InputPerMillion: 0.27, OutputPerMillion: 1.10},
}

// Estimate is the projected cost and duration of a batch extraction run.
type Estimate struct {
	Model            string  `json:"model"`
	Papers           int     `json:"papers"`
	InputTokens      int     `json:"input_tokens"`
	OutputTokens     int     `json:"output_tokens"`
	CostUSD          float64 `json:"cost_usd"`
	SerialSeconds    float64 `json:"serial_seconds"`
	ParallelSeconds  float64 `json:"parallel_seconds"`
	ParallelWorkers  int     `json:"parallel_workers"`
	SecondsPerPaper  float64 `json:"seconds_per_paper"`
	TokensPerPaperIn int     `json:"tokens_per_paper_in"`
}

// EstimateParams describes a planned batch run.
type EstimateParams struct {
	Model           string
	SamplePrompt    string // representative per-paper prompt, used for token counting
	Papers          int
	OutputPerPaper  int     // expected completion tokens per paper; defaults to 800
	SecondsPerPaper float64 // expected wall time per request; defaults to 20
	Workers         int     // parallel workers for the projection; defaults to 4
}

// CountTokens counts tokens for the given model, falling back to the
// cl100k_base encoding for models tiktoken does not know.
func CountTokens(model, text string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			// rough heuristic so the estimate stays usable offline
			return len(text) / 4
		}
	}
	return len(enc.Encode(text, nil, nil))
}

// EstimateBatch projects the token usage, cost and duration of extracting
// causal structures from a batch of papers.
func EstimateBatch(params EstimateParams) (*Estimate, error) {
	if params.Papers <= 0 {
		return nil, fmt.Errorf("paper count must be positive, got %d", params.Papers)
	}
	if params.OutputPerPaper <= 0 {
		params.OutputPerPaper = 800
	}
	if params.SecondsPerPaper <= 0 {
		params.SecondsPerPaper = 20
	}
	if params.Workers <= 0 {
		params.Workers = 4
	}

	perPaperIn := CountTokens(params.Model, params.SamplePrompt) +
		CountTokens(params.Model, CausalExtractionSystemPrompt)

	inputTokens := perPaperIn * params.Papers
	outputTokens := params.OutputPerPaper * params.Papers

	pricing, ok := lookupPricing(params.Model)
	var cost float64
	if ok {
		cost = float64(inputTokens)/1e6*pricing.InputPerMillion +
			float64(outputTokens)/1e6*pricing.OutputPerMillion
	}

	serial := params.SecondsPerPaper * float64(params.Papers)

	return &Estimate{
		Model:            params.Model,
		Papers:           params.Papers,
		InputTokens:      inputTokens,
		OutputTokens:     outputTokens,
		CostUSD:          cost,
		SerialSeconds:    serial,
		ParallelSeconds:  serial / float64(params.Workers),
		ParallelWorkers:  params.Workers,
		SecondsPerPaper:  params.SecondsPerPaper,
		TokensPerPaperIn: perPaperIn,
	}, nil
}

func lookupPricing(model string) (Pricing, bool) {
	if p, ok := DefaultPricing[model]; ok {
		return p, true
	}
	// match versioned model names like gpt-4o-2024-08-06; longest prefix wins
	var best string
	for name := range DefaultPricing {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return DefaultPricing[best], true
	}
	return Pricing{}, false
}
