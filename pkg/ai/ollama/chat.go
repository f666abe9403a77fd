package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"github.com/yppgo/patentgraph/pkg/ai"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
)

// promptContextSize estimates the context window a prompt needs. Ollama
// silently truncates at the model default, so long paper excerpts need an
// explicit num_ctx.
func promptContextSize(prompt string) (int, error) {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(prompt, nil, nil)) + 200, nil
}

// GenerateCompletion sends a single-turn prompt and returns assistant text.
func (c *ExtractorClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Model:       c.planningModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sys := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sys})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{"temperature": options.Temperature},
	}

	tokens, err := promptContextSize(prompt)
	if err != nil {
		return "", err
	}
	if tokens > 4096 {
		req.Options["num_ctx"] = tokens
	}

	final, err := c.chat(ctx, req)
	if err != nil {
		return "", err
	}

	return final.Message.Content, nil
}

// GenerateCompletionWithFormat enforces a JSON schema and unmarshals into out.
func (c *ExtractorClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	if out == nil {
		return errors.New("out must be a non-nil pointer")
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("out must be a non-nil pointer")
	}

	schemaObj := ai.GenerateSchema(out)
	formatBytes, err := json.Marshal(schemaObj)
	if err != nil {
		return err
	}
	var format json.RawMessage = formatBytes

	options := ai.GenerateOptions{
		Model:       c.extractionModel,
		Temperature: 0.1,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sys := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sys})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Format:   format,
		Options:  map[string]any{"temperature": options.Temperature},
	}

	tokens, err := promptContextSize(prompt)
	if err != nil {
		return err
	}
	if tokens > 4096 {
		req.Options["num_ctx"] = tokens
	}

	final, err := c.chat(ctx, req)
	if err != nil {
		return err
	}

	return ai.UnmarshalFlexible(final.Message.Content, out)
}

// GenerateChat sends a multi-turn conversation and returns assistant text.
func (c *ExtractorClient) GenerateChat(
	ctx context.Context,
	messages []ai.ChatMessage,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Model:         c.planningModel,
		SystemPrompts: []string{},
		Temperature:   0.2,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := make([]api.Message, 0, len(options.SystemPrompts)+len(messages))
	for _, sys := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sys})
	}
	for _, m := range messages {
		role := m.Role
		if role == "" {
			role = "user"
		}
		msgs = append(msgs, api.Message{Role: role, Content: m.Message})
	}

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{"temperature": options.Temperature},
	}

	final, err := c.chat(ctx, req)
	if err != nil {
		return "", err
	}

	return final.Message.Content, nil
}

// chat executes a non-streaming chat request, accumulating the callback
// chunks and recording usage metrics.
func (c *ExtractorClient) chat(
	ctx context.Context,
	req *api.ChatRequest,
) (*api.ChatResponse, error) {
	var final api.ChatResponse
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
			final.Metrics = cr.Metrics
		}
		return nil
	}); err != nil {
		return nil, err
	}

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		DurationMs:   final.Metrics.TotalDuration.Milliseconds(),
	})

	return &final, nil
}

// ListModels returns the models available on the Ollama server.
func (c *ExtractorClient) ListModels(
	ctx context.Context,
) ([]ai.ModelInfo, error) {
	resp, err := c.Client.List(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]ai.ModelInfo, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, ai.ModelInfo{
			ID:      m.Name,
			OwnedBy: "ollama",
		})
	}
	return models, nil
}
