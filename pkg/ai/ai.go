package ai

import "context"

// ChatMessage represents a single message in a chat conversation.
//
// Role must be one of:
//   - "user"      → a user-provided message
//   - "assistant" → a message from the AI assistant
type ChatMessage struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// GenerateOptions holds configuration for AI generation requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
}

// ModelMetrics contains usage metrics accumulated across AI calls.
type ModelMetrics struct {
	InputTokens  int   `json:"input_tokens"`
	OutputTokens int   `json:"output_tokens"`
	TotalTokens  int   `json:"total_tokens"`
	DurationMs   int64 `json:"duration_ms"`
}

// ModelInfo identifies a model served by the configured endpoint.
type ModelInfo struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by"`
}

// GenerateOption is a functional option for configuring AI generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the generation request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// Client defines the AI operations the toolkit depends on: plain and
// structured completions for extraction and keyword translation, chat for the
// agent loops, and model listing for the aggregator endpoint.
type Client interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name string,
		description string,
		prompt string,
		out any,
		opts ...GenerateOption,
	) error

	GenerateChat(
		ctx context.Context,
		messages []ChatMessage,
		opts ...GenerateOption,
	) (string, error)

	ListModels(ctx context.Context) ([]ModelInfo, error)

	ResetMetrics()
	GetMetrics() ModelMetrics
}
