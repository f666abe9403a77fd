package openai

import (
	"sync"

	"github.com/yppgo/patentgraph/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ExtractorClient talks to an OpenAI-compatible endpoint for the extraction
// and planning pipelines. It works against the official API as well as
// aggregators and local gateways that speak the same protocol.
//
// An ExtractorClient should be created using NewExtractorClient.
type ExtractorClient struct {
	extractionModel string
	planningModel   string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewExtractorClientParams defines the configuration parameters for creating
// a new ExtractorClient.
//
// ExtractionModel is used for structured causal extraction from papers.
// PlanningModel is used for keyword extraction and plan summaries.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL means the official OpenAI endpoint.
type NewExtractorClientParams struct {
	ExtractionModel string
	PlanningModel   string

	ChatURL string
	ChatKey string
}

// NewExtractorClient creates and returns a new ExtractorClient configured
// with the provided parameters.
func NewExtractorClient(
	params NewExtractorClientParams,
) *ExtractorClient {
	return &ExtractorClient{
		extractionModel: params.ExtractionModel,
		planningModel:   params.PlanningModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics: ai.ModelMetrics{
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			DurationMs:   0,
		},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}

func (c *ExtractorClient) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
}

// GetMetrics returns the accumulated token and latency metrics.
func (c *ExtractorClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	return c.metrics
}

// ResetMetrics clears the accumulated metrics.
func (c *ExtractorClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics = ai.ModelMetrics{}
}
