// Package config resolves application settings from the TOML config store
// and the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Config keys, in dot notation.
const (
	KeyZenRowsAPIKey     = "collector.zenrows_api_key"
	KeySources           = "collector.sources"
	KeyRatePerSecond     = "collector.rate_per_second"
	KeyLLMEnabled        = "llm.enabled"
	KeyLLMProvider       = "llm.provider"
	KeyLLMModel          = "llm.model"
	KeyLLMBaseURL        = "llm.base_url"
	KeyLLMAPIKey         = "llm.api_key"
	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"
	KeyIndexBackend      = "index.backend"
	KeyIndexCollection   = "index.collection"
	KeyIndexSQLitePath   = "index.sqlite_path"
	KeyIndexWeaviateURL  = "index.weaviate_url"
	KeyRunLogDir         = "runlog.dir"
	KeyRunLogProduct     = "runlog.product"
)

// Environment variables. Each overrides its config key.
const (
	EnvZenRowsAPIKey     = "ZENROWS_API_KEY"
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvUseLLM            = "CYBERX_USE_LLM"
	EnvLLMProvider       = "CYBERX_LLM_PROVIDER"
	EnvEmbeddingProvider = "CYBERX_EMBEDDING_PROVIDER"
	EnvIndexBackend      = "CYBERX_INDEX_BACKEND"
	EnvWeaviateURL       = "WEAVIATE_URL"
)

// LoadSettings resolves settings once at process entry.
// Precedence is environment, then config file, then domain defaults.
// store and getenv may be nil.
func LoadSettings(store driven.ConfigStore, getenv func(string) string) (domain.Settings, error) {
	r := resolver{store: store, getenv: getenv}
	s := domain.DefaultSettings()

	// Collector
	s.Collector.ZenRows = domain.ResolveCapability(
		r.str(KeyZenRowsAPIKey, EnvZenRowsAPIKey), domain.ZenRowsKeyPlaceholder)
	if sources := r.strings(KeySources); len(sources) > 0 {
		s.Collector.Sources = sources
	}
	if rate := r.float(KeyRatePerSecond); rate > 0 {
		s.Collector.RatePerSecond = rate
	}

	// LLM
	if provider := r.str(KeyLLMProvider, EnvLLMProvider); provider != "" {
		s.LLM.Provider = domain.AIProvider(strings.ToLower(provider))
	}
	if !s.LLM.Provider.IsValid() {
		return s, fmt.Errorf("%w: unknown llm provider %q", domain.ErrInvalidInput, s.LLM.Provider)
	}
	enabled, err := r.boolean(KeyLLMEnabled, EnvUseLLM, true)
	if err != nil {
		return s, err
	}
	s.LLM.Enabled = enabled
	s.LLM.Model = r.str(KeyLLMModel, "")
	if s.LLM.Model == "" {
		s.LLM.Model = domain.DefaultLLMModels()[s.LLM.Provider]
	}
	s.LLM.BaseURL = r.str(KeyLLMBaseURL, "")
	s.LLM.Key = r.apiKey(s.LLM.Provider, KeyLLMAPIKey)

	// Embedding
	if provider := r.str(KeyEmbeddingProvider, EnvEmbeddingProvider); provider != "" {
		s.Embedding.Provider = domain.AIProvider(strings.ToLower(provider))
	}
	if !s.Embedding.Provider.IsValid() {
		return s, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, s.Embedding.Provider)
	}
	s.Embedding.Model = r.str(KeyEmbeddingModel, "")
	if s.Embedding.Model == "" {
		s.Embedding.Model = domain.DefaultEmbeddingModels()[s.Embedding.Provider]
	}
	s.Embedding.BaseURL = r.str(KeyEmbeddingBaseURL, "")
	if s.Embedding.BaseURL == "" && s.Embedding.Provider.IsLocal() {
		s.Embedding.BaseURL = domain.DefaultSettings().Embedding.BaseURL
	}
	s.Embedding.Key = r.apiKey(s.Embedding.Provider, KeyEmbeddingAPIKey)
	if !s.Embedding.Key.IsConfigured() && s.Embedding.Provider == s.LLM.Provider {
		s.Embedding.Key = s.LLM.Key
	}

	// Index
	if backend := r.str(KeyIndexBackend, EnvIndexBackend); backend != "" {
		s.Index.Backend = domain.IndexBackend(strings.ToLower(backend))
	}
	if !s.Index.Backend.IsValid() {
		return s, fmt.Errorf("%w: unknown index backend %q", domain.ErrInvalidInput, s.Index.Backend)
	}
	if collection := r.str(KeyIndexCollection, ""); collection != "" {
		s.Index.Collection = collection
	}
	s.Index.SQLitePath = r.str(KeyIndexSQLitePath, "")
	if url := r.str(KeyIndexWeaviateURL, EnvWeaviateURL); url != "" {
		s.Index.WeaviateURL = url
	}

	// Run log
	if dir := r.str(KeyRunLogDir, ""); dir != "" {
		s.RunLog.Dir = dir
	}
	if product := r.str(KeyRunLogProduct, ""); product != "" {
		s.RunLog.Product = product
	}

	return s, nil
}

type resolver struct {
	store  driven.ConfigStore
	getenv func(string) string
}

func (r resolver) env(name string) string {
	if r.getenv == nil || name == "" {
		return ""
	}
	return strings.TrimSpace(r.getenv(name))
}

func (r resolver) str(key, envName string) string {
	if v := r.env(envName); v != "" {
		return v
	}
	if r.store == nil {
		return ""
	}
	return strings.TrimSpace(r.store.GetString(key))
}

func (r resolver) strings(key string) []string {
	if r.store == nil {
		return nil
	}
	var out []string
	for _, v := range r.store.GetStringSlice(key) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r resolver) float(key string) float64 {
	if r.store == nil {
		return 0
	}
	return r.store.GetFloat(key)
}

func (r resolver) boolean(key, envName string, fallback bool) (bool, error) {
	if v := r.env(envName); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback, fmt.Errorf("%w: %s=%q is not a boolean", domain.ErrInvalidInput, envName, v)
		}
		return b, nil
	}
	if r.store != nil {
		if _, ok := r.store.Get(key); ok {
			return r.store.GetBool(key), nil
		}
	}
	return fallback, nil
}

// apiKey resolves a provider credential. The provider's own environment
// variable wins over the config key.
func (r resolver) apiKey(provider domain.AIProvider, key string) domain.Capability {
	switch provider {
	case domain.AIProviderGemini:
		return domain.ResolveCapability(r.str(key, EnvGeminiAPIKey), domain.GeminiKeyPlaceholder)
	case domain.AIProviderOpenAI:
		return domain.ResolveCapability(r.str(key, EnvOpenAIAPIKey), domain.OpenAIKeyPlaceholder)
	default:
		return domain.Unavailable()
	}
}
