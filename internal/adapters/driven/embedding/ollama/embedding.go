// Package ollama embeds threat records with a local Ollama server through
// langchaingo's Ollama client.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	lcollama "github.com/tmc/langchaingo/llms/ollama"

	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

var _ driven.EmbeddingService = (*EmbeddingService)(nil)

const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultModel      = "all-minilm"
	DefaultTimeout    = 30 * time.Second
	DefaultDimensions = 384 // all-minilm

	// DefaultKeepAlive keeps the model resident between the per-record
	// calls of one indexing pass.
	DefaultKeepAlive = "5m"
)

// Config selects the server and model.
type Config struct {
	BaseURL    string
	Model      string
	Timeout    time.Duration
	Dimensions int
	KeepAlive  string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Dimensions == 0 {
		c.Dimensions = DefaultDimensions
	}
	if c.KeepAlive == "" {
		c.KeepAlive = DefaultKeepAlive
	}
	return c
}

// vectorizer is the part of *lcollama.LLM this adapter calls.
type vectorizer interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingService turns record text into vectors for the semantic index.
type EmbeddingService struct {
	vectors    vectorizer
	server     string
	model      string
	dimensions int
}

// NewEmbeddingService validates the server URL and builds the client.
// No request is sent until the first Embed.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	cfg = cfg.withDefaults()

	server, err := url.Parse(cfg.BaseURL)
	if err != nil || server.Scheme == "" || server.Host == "" {
		return nil, fmt.Errorf("ollama: invalid server URL %q", cfg.BaseURL)
	}

	llm, err := lcollama.New(
		lcollama.WithServerURL(server.String()),
		lcollama.WithModel(cfg.Model),
		lcollama.WithKeepAlive(cfg.KeepAlive),
		lcollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama: create client: %w", err)
	}

	return &EmbeddingService{
		vectors:    llm,
		server:     server.String(),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed returns the vector for one record or question.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.vectors.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("ollama: embed with %s at %s: %w", s.model, s.server, err)
	}
	if len(vectors) != 1 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("ollama: %s returned no vector", s.model)
	}
	return vectors[0], nil
}

func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping embeds a one-word string, which also confirms the model is pulled.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no open resources.
func (s *EmbeddingService) Close() error {
	return nil
}
