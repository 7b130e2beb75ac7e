package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// retrievalTopK is the number of entries used as grounding context.
const retrievalTopK = 3

// errEmptyAnswer is returned when the model answers with whitespace only.
var errEmptyAnswer = errors.New("empty answer")

// RetrieverService answers questions with a three-tier fallback:
// grounded generation over the knowledge base, then the static question
// table, then domain.InsufficientData. The table is consulted only after
// the first tier fails.
type RetrieverService struct {
	kb          driven.KnowledgeBase
	llm         driven.LLMService
	table       domain.QATable
	promptStore driven.PromptStore
}

// NewRetrieverService creates a retriever.
// llm is optional; kb may be unavailable.
func NewRetrieverService(kb driven.KnowledgeBase, llm driven.LLMService, table domain.QATable) *RetrieverService {
	return &RetrieverService{
		kb:    kb,
		llm:   llm,
		table: table,
	}
}

// SetPromptStore sets the store used to load the answer prompt.
func (s *RetrieverService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Status reports which tiers are available.
func (s *RetrieverService) Status() *domain.RetrievalPhase {
	return &domain.RetrievalPhase{
		Description:            domain.RetrievalDescription,
		KnowledgeBaseAvailable: s.kb.Available(),
		LLMAvailable:           s.llm != nil,
	}
}

// Answer always returns an answer. The error is set when grounded
// generation failed and the fallback tiers answered instead.
func (s *RetrieverService) Answer(ctx context.Context, question string) (string, error) {
	logger.Debug("RAG query: %q", question)

	answer, err := s.grounded(ctx, question)
	if err == nil {
		return answer, nil
	}
	logger.Warn("RAG failed, using fallback answer: %v", err)

	if canned, ok := s.table.Lookup(question); ok {
		return canned, err
	}
	return domain.InsufficientData, err
}

func (s *RetrieverService) grounded(ctx context.Context, question string) (string, error) {
	if !s.kb.Available() {
		return "", domain.ErrIndexUnavailable
	}

	embedding, err := s.kb.Embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: embed question: %w", domain.ErrIndexUnavailable, err)
	}
	hits, err := s.kb.Collection.Query(ctx, embedding, retrievalTopK)
	if err != nil {
		return "", fmt.Errorf("%w: query: %w", domain.ErrIndexUnavailable, err)
	}
	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		texts = append(texts, hit.Text)
	}
	grounding := strings.Join(texts, "\n\n")
	logger.Debug("Retrieved %d context entries", len(hits))

	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	template := loadPrompt(s.promptStore, driven.PromptRAGAnswer, driven.DefaultRAGAnswerPrompt, 2)
	response, err := s.llm.Generate(ctx, fmt.Sprintf(template, grounding, question), driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	answer := strings.TrimSpace(response)
	if answer == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, errEmptyAnswer)
	}
	return answer, nil
}
