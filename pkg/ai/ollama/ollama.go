package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/yppgo/patentgraph/pkg/ai"

	"github.com/ollama/ollama/api"
)

// ExtractorClient implements the ai.Client interface against a locally
// hosted Ollama server, for running the extraction pipeline without any
// paid API.
type ExtractorClient struct {
	extractionModel string
	planningModel   string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewExtractorClientParams contains configuration options for creating a new
// ExtractorClient.
type NewExtractorClientParams struct {
	ExtractionModel string
	PlanningModel   string

	BaseURL string
	ApiKey  string
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewExtractorClient creates a new Ollama-based AI client connecting to the
// server at BaseURL (or the default if empty).
func NewExtractorClient(
	params NewExtractorClientParams,
) (*ExtractorClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.ApiKey,
			},
			rt: http.DefaultTransport,
		},
	}

	cli := api.NewClient(u, httpClient)

	return &ExtractorClient{
		extractionModel: params.ExtractionModel,
		planningModel:   params.PlanningModel,

		metricsLock: sync.Mutex{},
		metrics: ai.ModelMetrics{
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			DurationMs:   0,
		},

		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,

		Client: cli,
	}, nil
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
