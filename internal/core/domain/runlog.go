package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CollectionMethod records which fetch path produced the raw documents.
type CollectionMethod string

// Collection methods.
const (
	CollectionPrimary  CollectionMethod = "primary"
	CollectionFallback CollectionMethod = "fallback"
)

// SessionStatus is the state of the interactive session.
type SessionStatus string

// Session states.
const (
	// SessionRunning is the initial state.
	SessionRunning SessionStatus = "running"

	// SessionCompleted is reached on a termination keyword.
	SessionCompleted SessionStatus = "completed"

	// SessionAborted is reached when input ends without a termination keyword.
	SessionAborted SessionStatus = "aborted"
)

// Phase descriptions written to the run log.
const (
	CollectionDescription    = "Raw collected reports (title, url, content preview)"
	ExtractionDescription    = "Extracted structured threat intelligence documents"
	KnowledgeBaseDescription = "Knowledge base entries (full list with summary fields)"
	RetrievalDescription     = "RAG query system status"
	SessionDescription       = "CyberX AI Brainstorm & Analysis Session"
)

// RunLog accumulates one end-to-end pipeline execution. Each stage owns
// exactly one phase; phases that never ran are omitted.
type RunLog struct {
	RunNumber int    `json:"run_number"`
	Phases    Phases `json:"phases"`
}

// NewRunLog creates an empty log for the given run.
func NewRunLog(runNumber int) *RunLog {
	return &RunLog{RunNumber: runNumber}
}

// Phases holds the per-stage sections of a RunLog.
type Phases struct {
	Phase1 *CollectionPhase    `json:"phase1,omitempty"`
	Phase2 *ExtractionPhase    `json:"phase2,omitempty"`
	Phase3 *KnowledgeBasePhase `json:"phase3,omitempty"`
	Phase4 *RetrievalPhase     `json:"phase4,omitempty"`
	Phase5 *SessionPhase       `json:"phase5,omitempty"`
}

// CollectionPhase is the Collector's section.
type CollectionPhase struct {
	Description      string           `json:"description"`
	CollectionMethod CollectionMethod `json:"collection_method"`
	CollectedCount   int              `json:"collected_count"`
	Reports          []ReportSummary  `json:"reports"`
	FailedURLs       []FailedSource   `json:"failed_urls"`
	Error            string           `json:"error,omitempty"`
}

// NewCollectionPhase returns an empty collection section.
func NewCollectionPhase() *CollectionPhase {
	return &CollectionPhase{
		Description: CollectionDescription,
		Reports:     []ReportSummary{},
		FailedURLs:  []FailedSource{},
	}
}

// ExtractionPhase is the Extractor's section.
type ExtractionPhase struct {
	Description   string     `json:"description"`
	UsedLLM       bool       `json:"used_llm"`
	UsedMock      bool       `json:"used_mock"`
	DocumentCount int        `json:"document_count"`
	Documents     []Document `json:"documents"`
	Error         string     `json:"error,omitempty"`
}

// NewExtractionPhase returns an empty extraction section.
func NewExtractionPhase() *ExtractionPhase {
	return &ExtractionPhase{
		Description: ExtractionDescription,
		Documents:   []Document{},
	}
}

// KnowledgeBasePhase is the Indexer's section.
type KnowledgeBasePhase struct {
	Description  string           `json:"description"`
	TotalEntries int              `json:"total_entries"`
	Entries      []KnowledgeEntry `json:"entries"`
	Error        string           `json:"error,omitempty"`
}

// NewKnowledgeBasePhase returns an empty knowledge base section.
func NewKnowledgeBasePhase() *KnowledgeBasePhase {
	return &KnowledgeBasePhase{
		Description: KnowledgeBaseDescription,
		Entries:     []KnowledgeEntry{},
	}
}

// RetrievalPhase is the Retriever's status section.
type RetrievalPhase struct {
	Description            string `json:"description"`
	KnowledgeBaseAvailable bool   `json:"knowledge_base_available"`
	LLMAvailable           bool   `json:"llm_available"`
}

// SessionPhase is the Session's section.
type SessionPhase struct {
	Description         string        `json:"description"`
	PredefinedQuestions []string      `json:"predefined_questions"`
	Status              SessionStatus `json:"status"`
	Queries             []string      `json:"queries"`
}

// NewSessionPhase returns a running session section.
func NewSessionPhase(questions []string) *SessionPhase {
	if questions == nil {
		questions = []string{}
	}
	return &SessionPhase{
		Description:         SessionDescription,
		PredefinedQuestions: questions,
		Status:              SessionRunning,
		Queries:             []string{},
	}
}

// ArtifactName returns the file name of a run log, e.g. "CyberX #3.json".
func ArtifactName(product string, runNumber int) string {
	return fmt.Sprintf("%s #%d.json", product, runNumber)
}

// ParseArtifactName extracts the run number from a run-log file name.
// It returns false for names that do not follow ArtifactName's pattern.
func ParseArtifactName(product, name string) (int, bool) {
	prefix := product + " #"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
