package domain

import "time"

const unknownDescription = "Unknown"

// Fetch timeouts for the two collection paths.
const (
	PrimaryFetchTimeout  = 60 * time.Second
	FallbackFetchTimeout = 30 * time.Second
)

// DefaultProduct names run-log artifacts.
const DefaultProduct = "CyberX"

// DefaultCollection is the semantic index collection name.
const DefaultCollection = "threat_intel"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is Google's Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// IndexBackend selects the semantic index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendMemory keeps vectors in process memory.
	IndexBackendMemory IndexBackend = "memory"

	// IndexBackendSQLite keeps vectors in an SQLite database.
	IndexBackendSQLite IndexBackend = "sqlite"

	// IndexBackendWeaviate uses a Weaviate server.
	IndexBackendWeaviate IndexBackend = "weaviate"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendMemory, IndexBackendSQLite, IndexBackendWeaviate:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b IndexBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b IndexBackend) Description() string {
	switch b {
	case IndexBackendMemory:
		return "In-memory (process lifetime)"
	case IndexBackendSQLite:
		return "SQLite (embedded)"
	case IndexBackendWeaviate:
		return "Weaviate (server)"
	default:
		return unknownDescription
	}
}

// CollectorSettings configures the Collector.
type CollectorSettings struct {
	// ZenRows is the primary fetch credential.
	ZenRows Capability

	// Sources is the ordered list of article URLs.
	Sources []string

	// RatePerSecond throttles outbound fetches. Zero disables throttling.
	RatePerSecond float64
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Enabled is the feature flag for generative extraction and answers.
	Enabled bool

	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// Key is the API credential (for Gemini/OpenAI).
	Key Capability
}

// IsConfigured returns true if the LLM is enabled and usable.
func (l LLMSettings) IsConfigured() bool {
	if !l.Enabled || !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && !l.Key.IsConfigured() {
		return false
	}
	return true
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// Key is the API credential (for Gemini/OpenAI).
	Key Capability
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && !e.Key.IsConfigured() {
		return false
	}
	return true
}

// IndexSettings configures the semantic index.
type IndexSettings struct {
	// Backend selects the implementation.
	Backend IndexBackend

	// Collection is the collection name.
	Collection string

	// SQLitePath is the database file. Empty means in-memory.
	SQLitePath string

	// WeaviateURL is the Weaviate server address.
	WeaviateURL string
}

// RunLogSettings configures where run logs are written.
type RunLogSettings struct {
	// Dir is the directory holding run-log artifacts.
	Dir string

	// Product prefixes artifact names.
	Product string
}

// Settings is the immutable configuration resolved once at process entry.
type Settings struct {
	Collector CollectorSettings
	LLM       LLMSettings
	Embedding EmbeddingSettings
	Index     IndexSettings
	RunLog    RunLogSettings
}

// DefaultSettings returns settings with sensible defaults.
// Credentials are left unavailable.
func DefaultSettings() Settings {
	return Settings{
		Collector: CollectorSettings{
			ZenRows:       Unavailable(),
			Sources:       DefaultSources(),
			RatePerSecond: 1,
		},
		LLM: LLMSettings{
			Enabled:  true,
			Provider: AIProviderGemini,
			Model:    DefaultLLMModels()[AIProviderGemini],
			Key:      Unavailable(),
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModels()[AIProviderOllama],
			BaseURL:  "http://localhost:11434",
			Key:      Unavailable(),
		},
		Index: IndexSettings{
			Backend:     IndexBackendSQLite,
			Collection:  DefaultCollection,
			WeaviateURL: "http://localhost:8080",
		},
		RunLog: RunLogSettings{
			Dir:     ".",
			Product: DefaultProduct,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderOllama,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderOllama,
	}
}

// AllIndexBackends returns the available semantic index backends.
func AllIndexBackends() []IndexBackend {
	return []IndexBackend{
		IndexBackendMemory,
		IndexBackendSQLite,
		IndexBackendWeaviate,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "gemini-2.0-flash",
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderOllama: "llama3.2",
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "text-embedding-004",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderOllama: "all-minilm",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		// Gemini models
		"text-embedding-004": 768,
		"embedding-001":      768,
	}
}
