package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/storage/weaviate"
	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})

	t.Run("close with all services", func(t *testing.T) {
		embedder, err := createOllamaEmbedding(&domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
		})
		require.NoError(t, err)
		result := &InitResult{
			LLMService:       createOllamaLLM(&domain.LLMSettings{Provider: domain.AIProviderOllama}),
			EmbeddingService: embedder,
			SemanticIndex:    memory.NewSemanticIndex(),
		}
		result.Close()
	})
}

func TestCreateEmbeddingService(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantNil  bool
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Key:      domain.Configured("test-key"),
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "openai without key is not configured",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Key:      domain.ResolveCapability(domain.OpenAIKeyPlaceholder, domain.OpenAIKeyPlaceholder),
			},
			wantNil: true,
		},
		{
			name: "unknown provider returns nil (not configured)",
			settings: &domain.EmbeddingSettings{
				Provider: "unknown",
				Key:      domain.Configured("test-key"),
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(ctx, tt.settings)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			svc.Close()
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name: "disabled returns nil",
			settings: &domain.LLMSettings{
				Enabled:  false,
				Provider: domain.AIProviderOllama,
			},
			wantNil: true,
		},
		{
			name: "gemini placeholder key returns nil",
			settings: &domain.LLMSettings{
				Enabled:  true,
				Provider: domain.AIProviderGemini,
				Key:      domain.ResolveCapability(domain.GeminiKeyPlaceholder, domain.GeminiKeyPlaceholder),
			},
			wantNil: true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.LLMSettings{
				Enabled:  true,
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Enabled:  true,
				Provider: domain.AIProviderOpenAI,
				Key:      domain.Configured("test-key"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(ctx, tt.settings)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			svc.Close()
		})
	}
}

func TestCreateSemanticIndex(t *testing.T) {
	t.Run("nil settings", func(t *testing.T) {
		idx, err := CreateSemanticIndex(nil)
		require.NoError(t, err)
		assert.Nil(t, idx)
	})

	t.Run("memory", func(t *testing.T) {
		idx, err := CreateSemanticIndex(&domain.IndexSettings{Backend: domain.IndexBackendMemory})
		require.NoError(t, err)
		assert.IsType(t, &memory.SemanticIndex{}, idx)
	})

	t.Run("sqlite in memory", func(t *testing.T) {
		idx, err := CreateSemanticIndex(&domain.IndexSettings{Backend: domain.IndexBackendSQLite})
		require.NoError(t, err)
		defer idx.Close()
		assert.IsType(t, &sqlite.Store{}, idx)
	})

	t.Run("sqlite file", func(t *testing.T) {
		idx, err := CreateSemanticIndex(&domain.IndexSettings{
			Backend:    domain.IndexBackendSQLite,
			SQLitePath: t.TempDir() + "/index.db",
		})
		require.NoError(t, err)
		assert.NoError(t, idx.Close())
	})

	t.Run("weaviate", func(t *testing.T) {
		idx, err := CreateSemanticIndex(&domain.IndexSettings{
			Backend:     domain.IndexBackendWeaviate,
			WeaviateURL: "http://localhost:8080",
		})
		require.NoError(t, err)
		assert.IsType(t, &weaviate.Index{}, idx)
	})

	t.Run("weaviate bad url", func(t *testing.T) {
		_, err := CreateSemanticIndex(&domain.IndexSettings{
			Backend:     domain.IndexBackendWeaviate,
			WeaviateURL: "::",
		})
		assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := CreateSemanticIndex(&domain.IndexSettings{Backend: "redis"})
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestInitialise_Defaults(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Index.Backend = domain.IndexBackendMemory

	result := Initialise(context.Background(), settings)
	defer result.Close()

	// No Gemini key by default, so generation is off.
	assert.Nil(t, result.LLMService)
	assert.NotNil(t, result.EmbeddingService)
	assert.NotNil(t, result.SemanticIndex)
	assert.Empty(t, result.Warnings)
}

func TestInitialise_CollectsWarnings(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Index.Backend = "redis"

	result := Initialise(context.Background(), settings)
	defer result.Close()

	assert.Nil(t, result.SemanticIndex)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "redis")
}

func TestCreateAndValidateLLMService(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured returns nil without error", func(t *testing.T) {
		svc, err := CreateAndValidateLLMService(ctx, &domain.LLMSettings{})
		assert.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("reachable ollama", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(ctx, &domain.LLMSettings{
			Enabled:  true,
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
		svc.Close()
	})

	t.Run("unreachable ollama", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(ctx, &domain.LLMSettings{
			Enabled:  true,
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.Nil(t, svc)
	})
}

func TestCreateAndValidateEmbeddingService_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, err := CreateAndValidateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
	})

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, svc)
}

func TestCreateOllamaEmbedding_Dimensions(t *testing.T) {
	svc, err := createOllamaEmbedding(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	assert.Equal(t, 768, svc.Dimensions())

	svc, err = createOllamaEmbedding(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "custom-model",
	})
	require.NoError(t, err)
	assert.Equal(t, 384, svc.Dimensions())
}

func TestCreateEmbeddingService_OllamaBadURL(t *testing.T) {
	svc, err := CreateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "all-minilm",
		BaseURL:  "localhost:11434",
	})

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, svc)
}
