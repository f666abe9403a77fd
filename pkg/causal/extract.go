package causal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yppgo/patentgraph/internal/util"
	"github.com/yppgo/patentgraph/pkg/ai"
	"github.com/yppgo/patentgraph/pkg/logger"
)

type extractedVariable struct {
	Label      string `json:"label" jsonschema_description:"Short human-readable variable name"`
	Category   string `json:"category" jsonschema:"enum=input,enum=mediator,enum=outcome,enum=moderator" jsonschema_description:"Role of the variable in the causal structure"`
	Definition string `json:"definition" jsonschema_description:"One-sentence definition of the variable"`
}

type extractedPath struct {
	Source     string  `json:"source" jsonschema_description:"Label of the cause variable"`
	Target     string  `json:"target" jsonschema_description:"Label of the effect variable"`
	EffectType string  `json:"effect_type" jsonschema:"enum=positive,enum=negative,enum=inverted_u,enum=threshold" jsonschema_description:"Direction or shape of the effect"`
	EffectSize string  `json:"effect_size" jsonschema_description:"Reported effect size, empty if none"`
	Mechanism  string  `json:"mechanism" jsonschema_description:"Mechanism the authors give for the effect"`
	Confidence float64 `json:"confidence" jsonschema_description:"Extraction confidence between 0 and 1"`
}

type extractResponse struct {
	Variables []extractedVariable `json:"variables" jsonschema_description:"All causal variables the text defines"`
	Paths     []extractedPath     `json:"causal_paths" jsonschema_description:"All directed causal effects the text claims"`
}

// Extractor turns research text into ontology fragments using a structured
// LLM call.
type Extractor struct {
	client ai.Client
	model  string
}

// NewExtractorParams configures an Extractor. Model may be empty to use the
// client's default extraction model.
type NewExtractorParams struct {
	Client ai.Client
	Model  string
}

func NewExtractor(params NewExtractorParams) *Extractor {
	return &Extractor{
		client: params.Client,
		model:  params.Model,
	}
}

// Extract runs the causal extraction prompt over the given text and returns
// the variables and paths as an ontology fragment. Variable IDs are slugified
// from labels so repeated extractions of the same concept converge on the
// same ID.
func (e *Extractor) Extract(ctx context.Context, text string) (*Ontology, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	opts := []ai.GenerateOption{
		ai.WithSystemPrompts(ai.CausalExtractionSystemPrompt),
	}
	if e.model != "" {
		opts = append(opts, ai.WithModel(e.model))
	}

	var resp extractResponse
	err := util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		return e.client.GenerateCompletionWithFormat(
			ctx,
			"causal_extraction",
			"Causal variables and directed effects reported by the text",
			text,
			&resp,
			opts...,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("causal extraction failed: %w", err)
	}

	fragment := &Ontology{
		Variables:   []Variable{},
		CausalPaths: []CausalPath{},
	}

	labelToID := make(map[string]string, len(resp.Variables))
	seen := make(map[string]bool, len(resp.Variables))
	for _, v := range resp.Variables {
		if strings.TrimSpace(v.Label) == "" {
			continue
		}
		id := util.SlugifyVariableID(v.Label)
		labelToID[strings.ToLower(v.Label)] = id
		if seen[id] {
			continue
		}
		seen[id] = true
		fragment.Variables = append(fragment.Variables, Variable{
			ID:         id,
			Label:      v.Label,
			Category:   normalizeCategory(v.Category),
			Definition: v.Definition,
		})
	}

	for _, p := range resp.Paths {
		sourceID, ok := labelToID[strings.ToLower(p.Source)]
		if !ok {
			logger.Warn("[Extract] path references undeclared source, skipping", "source", p.Source)
			continue
		}
		targetID, ok := labelToID[strings.ToLower(p.Target)]
		if !ok {
			logger.Warn("[Extract] path references undeclared target, skipping", "target", p.Target)
			continue
		}
		fragment.CausalPaths = append(fragment.CausalPaths, CausalPath{
			Source:     sourceID,
			Target:     targetID,
			EffectType: normalizeEffectType(p.EffectType),
			EffectSize: p.EffectSize,
			Mechanism:  p.Mechanism,
			Evidence: Evidence{
				Validated:     false,
				EvidenceCount: 1,
			},
		})
	}

	fragment.Meta = Meta{
		TotalVariables: len(fragment.Variables),
		TotalPaths:     len(fragment.CausalPaths),
		LastUpdated:    time.Now().Format("2006-01-02"),
	}

	return fragment, nil
}

func normalizeCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case CategoryInput, CategoryMediator, CategoryOutcome, CategoryModerator:
		return strings.ToLower(strings.TrimSpace(category))
	default:
		return CategoryInput
	}
}

func normalizeEffectType(effectType string) string {
	switch strings.ToLower(strings.TrimSpace(effectType)) {
	case EffectPositive, EffectNegative, EffectInvertedU, EffectThreshold:
		return strings.ToLower(strings.TrimSpace(effectType))
	default:
		return EffectPositive
	}
}
