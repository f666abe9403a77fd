package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/yppgo/patentgraph/pkg/ai"

	"github.com/openai/openai-go/v3"
)

// GenerateCompletion sends a single-turn prompt to the chat model and
// returns the generated completion as plain text.
//
// Example:
//
//	resp, err := client.GenerateCompletion(ctx, "Summarize this abstract...")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(resp)
func (c *ExtractorClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	client := c.ChatClient

	options := ai.GenerateOptions{
		Model:       c.planningModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := []openai.ChatCompletionMessageParamUnion{}
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, openai.SystemMessage(sp))
	}

	msgs = append(msgs, openai.UserMessage(prompt))

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(options.Model),
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}

	start := time.Now()
	response, err := client.Chat.Completions.New(ctx, body)
	if err != nil {
		return "", err
	}
	duration := time.Since(start).Milliseconds()

	metrics := ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   duration,
	}
	c.modifyMetrics(metrics)

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response from model")
	}

	return response.Choices[0].Message.Content, nil
}

// GenerateCompletionWithFormat sends a prompt to the chat model and
// attempts to unmarshal the response into the provided output struct,
// using a JSON schema to enforce structure.
//
// This is the workhorse of the extraction pipeline: variables, causal
// paths and conclusions all come back through it.
//
// Example:
//
//	var out extraction
//	err := client.GenerateCompletionWithFormat(ctx, "causal_extraction",
//		"Variables and effects reported by the paper", text, &out)
func (c *ExtractorClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	schema := ai.GenerateSchema(out)
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}

	options := ai.GenerateOptions{
		Model:       c.extractionModel,
		Temperature: 0.1,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := []openai.ChatCompletionMessageParamUnion{}
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, openai.SystemMessage(sp))
	}

	msgs = append(msgs, openai.UserMessage(prompt))

	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(options.Model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}

	start := time.Now()
	response, err := c.ChatClient.Chat.Completions.New(ctx, body)
	if err != nil {
		return err
	}
	duration := time.Since(start).Milliseconds()

	metrics := ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   duration,
	}
	c.modifyMetrics(metrics)

	if len(response.Choices) == 0 {
		return fmt.Errorf("no choices in response from model")
	}
	message := response.Choices[0].Message.Content
	if message == "" {
		return fmt.Errorf("empty response from model (finish_reason: %s)", response.Choices[0].FinishReason)
	}
	return ai.UnmarshalFlexible(message, out)
}

// GenerateChat sends a multi-turn chat conversation to the model and
// returns the assistant's reply as plain text.
func (c *ExtractorClient) GenerateChat(
	ctx context.Context,
	messages []ai.ChatMessage,
	opts ...ai.GenerateOption,
) (string, error) {
	client := c.ChatClient

	options := ai.GenerateOptions{
		Model:         c.planningModel,
		SystemPrompts: []string{},
		Temperature:   0.2,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0)
	for _, message := range options.SystemPrompts {
		msgs = append(msgs, openai.SystemMessage(message))
	}
	for _, message := range messages {
		switch message.Role {
		case "user":
			msgs = append(msgs, openai.UserMessage(message.Message))
		case "assistant":
			msgs = append(msgs, openai.AssistantMessage(message.Message))
		}
	}

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(options.Model),
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}

	start := time.Now()
	response, err := client.Chat.Completions.New(ctx, body)
	if err != nil {
		return "", err
	}
	duration := time.Since(start).Milliseconds()

	metrics := ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   duration,
	}
	c.modifyMetrics(metrics)

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response from model")
	}

	return response.Choices[0].Message.Content, nil
}
