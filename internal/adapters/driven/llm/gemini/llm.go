// Package gemini provides an LLM service adapter for Google Gemini using langchaingo.
package gemini

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultLLMModel is used when no model is configured.
const DefaultLLMModel = "gemini-2.0-flash"

// LLMConfig holds configuration for the Gemini LLM service.
type LLMConfig struct {
	// APIKey is the Google AI Studio key (required).
	APIKey string

	// Model is the model to use (default: gemini-2.0-flash).
	Model string
}

// LLMService generates text through a langchaingo model.
type LLMService struct {
	model  llms.Model
	closer func() error
	name   string
}

// NewLLMService creates a Gemini-backed LLM service.
func NewLLMService(ctx context.Context, cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &LLMService{model: client, closer: client.Close, name: cfg.Model}, nil
}

// newWithModel wraps an existing langchaingo model.
func newWithModel(model llms.Model, name string) *LLMService {
	return &LLMService{model: model, name: name}
}

// Generate produces a completion for a single prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	callOpts := []llms.CallOption{llms.WithModel(s.name)}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	return out, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.name
}

// Ping is a no-op: the Gemini API has no free health endpoint, so key
// problems surface on the first Generate and are handled by the callers'
// fallbacks.
func (s *LLMService) Ping(_ context.Context) error {
	if s.model == nil {
		return fmt.Errorf("gemini: client not initialised")
	}
	return nil
}

// Close releases the underlying client connection.
func (s *LLMService) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
