package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider(t *testing.T) {
	tests := []struct {
		provider AIProvider
		valid    bool
		needsKey bool
		local    bool
	}{
		{AIProviderGemini, true, true, false},
		{AIProviderOpenAI, true, true, false},
		{AIProviderOllama, true, false, true},
		{AIProvider("anthropic"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.provider.IsValid())
			assert.Equal(t, tt.needsKey, tt.provider.RequiresAPIKey())
			assert.Equal(t, tt.local, tt.provider.IsLocal())
			if !tt.valid {
				assert.Equal(t, unknownDescription, tt.provider.Description())
			}
		})
	}
}

func TestIndexBackend(t *testing.T) {
	for _, b := range AllIndexBackends() {
		assert.True(t, b.IsValid(), b)
		assert.NotEqual(t, unknownDescription, b.Description())
	}
	assert.False(t, IndexBackend("chroma").IsValid())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		want     bool
	}{
		{"disabled", LLMSettings{Enabled: false, Provider: AIProviderOllama}, false},
		{"ollama no key", LLMSettings{Enabled: true, Provider: AIProviderOllama}, true},
		{"gemini no key", LLMSettings{Enabled: true, Provider: AIProviderGemini}, false},
		{"gemini key", LLMSettings{Enabled: true, Provider: AIProviderGemini, Key: Configured("k")}, true},
		{"invalid provider", LLMSettings{Enabled: true, Provider: "x", Key: Configured("k")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, Key: Configured("k")}.IsConfigured())
	assert.False(t, EmbeddingSettings{}.IsConfigured())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.False(t, s.Collector.ZenRows.IsConfigured())
	assert.Len(t, s.Collector.Sources, 15)
	assert.True(t, s.LLM.Enabled)
	assert.Equal(t, AIProviderGemini, s.LLM.Provider)
	assert.False(t, s.LLM.IsConfigured())
	assert.Equal(t, "all-minilm", s.Embedding.Model)
	assert.Equal(t, IndexBackendSQLite, s.Index.Backend)
	assert.Equal(t, "threat_intel", s.Index.Collection)
	assert.Equal(t, "CyberX", s.RunLog.Product)
}

func TestDefaultModels_CoverProviders(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, DefaultLLMModels()[p], p)
	}
	for _, p := range AllEmbeddingProviders() {
		model := DefaultEmbeddingModels()[p]
		assert.NotEmpty(t, model, p)
		assert.Positive(t, EmbeddingDimensions()[model], model)
	}
}
