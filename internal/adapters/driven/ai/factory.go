// Package ai provides factory functions for creating AI service adapters
// and the semantic index they feed.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/cyberx-cli/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/custodia-labs/cyberx-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/cyberx-cli/internal/adapters/driven/embedding/openai"
	geminillm "github.com/custodia-labs/cyberx-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/cyberx-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/cyberx-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/storage/weaviate"
	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
// Any service may be nil; the pipeline degrades around missing ones.
type InitResult struct {
	LLMService       driven.LLMService
	EmbeddingService driven.EmbeddingService
	SemanticIndex    driven.SemanticIndex
	Warnings         []string // Non-fatal issues that disabled a service.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.SemanticIndex != nil {
		r.SemanticIndex.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Initialise creates every configured service. It never fails: a service
// that cannot be created is left nil and the reason is added to Warnings.
// No connectivity checks are made; failures surface in the phase records.
func Initialise(ctx context.Context, settings domain.Settings) *InitResult {
	result := &InitResult{}

	llm, err := CreateLLMService(ctx, &settings.LLM)
	if err != nil {
		result.warn("%v", err)
	}
	result.LLMService = llm

	embedder, err := CreateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		result.warn("%v", err)
	}
	result.EmbeddingService = embedder

	index, err := CreateSemanticIndex(&settings.Index)
	if err != nil {
		result.warn("%v", err)
	}
	result.SemanticIndex = index

	return result
}

func (r *InitResult) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Warn("%s", msg)
	r.Warnings = append(r.Warnings, msg)
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil || svc == nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Check the [embedding] section of %s",
			domain.ErrEmbeddingUnavailable, err, configHint)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil || svc == nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Check the [llm] section of %s",
			domain.ErrLLMUnavailable, err, configHint)
	}

	return svc, nil
}

// configHint names the config file in error guidance.
const configHint = "~/.cyberx/config.toml"

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.EmbeddingService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc, err = createOllamaEmbedding(settings)
	case domain.AIProviderOpenAI:
		svc, err = createOpenAIEmbedding(settings)
	case domain.AIProviderGemini:
		svc, err = createGeminiEmbedding(ctx, settings)
	default:
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if generation is disabled or the provider is not configured.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = createOllamaLLM(settings)
	case domain.AIProviderOpenAI:
		svc, err = createOpenAILLM(settings)
	case domain.AIProviderGemini:
		svc, err = createGeminiLLM(ctx, settings)
	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// CreateSemanticIndex opens the configured index backend.
// Returns nil if settings is nil.
func CreateSemanticIndex(settings *domain.IndexSettings) (driven.SemanticIndex, error) {
	if settings == nil {
		return nil, nil
	}

	switch settings.Backend {
	case domain.IndexBackendMemory:
		return memory.NewSemanticIndex(), nil

	case domain.IndexBackendSQLite, "":
		store, err := sqlite.NewStore(settings.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
		return store, nil

	case domain.IndexBackendWeaviate:
		index, err := weaviate.New(settings.WeaviateURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
		return index, nil

	default:
		return nil, fmt.Errorf("%w: index backend %q", domain.ErrUnsupportedType, settings.Backend)
	}
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	svc, err := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	key, _ := settings.Key.Credential()
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     key,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: domain.EmbeddingDimensions()[settings.Model],
	})
}

// createGeminiEmbedding creates a Gemini embedding service.
func createGeminiEmbedding(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	key, _ := settings.Key.Credential()
	return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
		APIKey:     key,
		Model:      settings.Model,
		Dimensions: domain.EmbeddingDimensions()[settings.Model],
	})
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	key, _ := settings.Key.Credential()
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  key,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createGeminiLLM creates a Gemini LLM service.
func createGeminiLLM(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	key, _ := settings.Key.Credential()
	return geminillm.NewLLMService(ctx, geminillm.LLMConfig{
		APIKey: key,
		Model:  settings.Model,
	})
}
