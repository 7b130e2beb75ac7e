package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// Ensure ExtractorService implements the interface.
var _ driving.Extractor = (*ExtractorService)(nil)

// Substitute documents are labelled with this source.
const substituteSource = "Simulated Feed"

// extractionTemperature keeps structured output deterministic.
const extractionTemperature = 0.1

// ExtractorService turns raw reports into threat intelligence documents.
//
// The generative path runs only when an LLM is present and there is at
// least one report. If any call fails, every document extracted so far is
// discarded and the whole output is replaced by the built-in dataset.
type ExtractorService struct {
	llm         driven.LLMService
	substitutes []domain.ThreatRecord
	promptStore driven.PromptStore
}

// NewExtractorService creates an extractor.
// llm is optional (nil when generation is disabled or not configured).
// substitutes is the dataset used on the substitute path.
func NewExtractorService(llm driven.LLMService, substitutes []domain.ThreatRecord) *ExtractorService {
	return &ExtractorService{
		llm:         llm,
		substitutes: substitutes,
	}
}

// SetPromptStore sets the store used to load the extraction prompt.
func (s *ExtractorService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Extract converts raw reports into documents.
func (s *ExtractorService) Extract(
	ctx context.Context, raws []domain.RawDocument,
) ([]domain.Document, *domain.ExtractionPhase) {
	phase := domain.NewExtractionPhase()

	switch {
	case s.llm == nil:
		logger.Info("LLM disabled, using substitute dataset")
	case len(raws) == 0:
		logger.Info("No reports collected, using substitute dataset")
	default:
		phase.UsedLLM = true
		docs, err := s.extractAll(ctx, raws)
		if err == nil {
			phase.Documents = docs
			phase.DocumentCount = len(docs)
			logger.Info("Extracted %d documents with %s", len(docs), s.llm.ModelName())
			return docs, phase
		}
		logger.Warn("Extraction failed, switching to substitute dataset: %v", err)
		phase.Error = err.Error()
	}

	docs := s.substitute()
	phase.UsedMock = true
	phase.Documents = docs
	phase.DocumentCount = len(docs)
	return docs, phase
}

func (s *ExtractorService) extractAll(ctx context.Context, raws []domain.RawDocument) ([]domain.Document, error) {
	template := loadPrompt(s.promptStore, driven.PromptExtraction, driven.DefaultExtractionPrompt, 1)
	opts := driven.GenerateOptions{Temperature: extractionTemperature}

	docs := make([]domain.Document, 0, len(raws))
	for _, raw := range raws {
		response, err := s.llm.Generate(ctx, fmt.Sprintf(template, raw.Content), opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrGeneration, raw.URL, err)
		}
		intel := parseThreatIntel(response)
		if !intel.IsStructured() {
			logger.Warn("Model output for %s was not valid JSON, keeping raw text", raw.URL)
		}
		docs = append(docs, domain.Document{
			Title:              raw.Title,
			Source:             raw.URL,
			ThreatIntelligence: intel,
		})
	}
	return docs, nil
}

func (s *ExtractorService) substitute() []domain.Document {
	docs := make([]domain.Document, 0, len(s.substitutes))
	for i, record := range s.substitutes {
		docs = append(docs, domain.Document{
			Title:              fmt.Sprintf("Mock Threat Report %d", i+1),
			Source:             substituteSource,
			ThreatIntelligence: domain.Structured(record),
		})
	}
	logger.Info("Loaded %d substitute documents", len(docs))
	return docs
}

// parseThreatIntel decodes model output into a record. Output that is not
// a JSON object is kept verbatim as Unparsed.
func parseThreatIntel(response string) domain.ThreatIntel {
	text := strings.TrimSpace(response)
	body := stripCodeFence(text)

	var record domain.ThreatRecord
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		logger.Debug("%v: %v", domain.ErrParse, err)
		return domain.Unparsed(text)
	}
	return domain.Structured(record)
}

// stripCodeFence removes a surrounding markdown code fence such as
// ```json ... ```.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
