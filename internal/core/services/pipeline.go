package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// Phase names reported to the ProgressReporter.
const (
	phaseCollection    = "Data Collection"
	phaseExtraction    = "Information Extraction"
	phaseKnowledgeBase = "Knowledge Base"
	phaseRetrieval     = "RAG Query"
	phaseSession       = "CLI Interface"
)

// PipelineService runs the stages strictly in sequence, threading one
// RunLog through them, and saves that log exactly once per run.
type PipelineService struct {
	collector   driving.Collector
	extractor   driving.Extractor
	indexer     driving.Indexer
	llm         driven.LLMService
	table       domain.QATable
	store       driven.RunLogStore
	sources     []string
	reporter    driven.ProgressReporter
	promptStore driven.PromptStore
}

// NewPipelineService creates a pipeline.
// llm is optional and is handed to the Retriever built for each run.
func NewPipelineService(
	collector driving.Collector,
	extractor driving.Extractor,
	indexer driving.Indexer,
	llm driven.LLMService,
	table domain.QATable,
	store driven.RunLogStore,
	sources []string,
) *PipelineService {
	return &PipelineService{
		collector: collector,
		extractor: extractor,
		indexer:   indexer,
		llm:       llm,
		table:     table,
		store:     store,
		sources:   sources,
	}
}

// SetReporter sets the optional progress reporter.
func (p *PipelineService) SetReporter(reporter driven.ProgressReporter) {
	p.reporter = reporter
}

// SetPromptStore sets the store passed to the per-run Retriever.
func (p *PipelineService) SetPromptStore(store driven.PromptStore) {
	p.promptStore = store
}

// Execute runs phases 1 to 4, then body as phase 5. The log is saved in a
// deferred step so it is written even when body returns an error or a
// stage panics; a panic is converted to the returned error.
func (p *PipelineService) Execute(ctx context.Context, body func(run *driving.Run) error) (err error) {
	runNumber, numErr := p.store.NextRunNumber()
	if numErr != nil {
		logger.Warn("Could not determine run number, starting at 1: %v", numErr)
		runNumber = 1
	}
	log := domain.NewRunLog(runNumber)
	logger.Info("Starting run #%d", runNumber)

	var session driving.Session
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline aborted: %v", r)
			logger.Warn("%v", err)
		}
		if session != nil {
			log.Phases.Phase5 = session.Phase()
			p.finished(5, log)
		}
		path, saveErr := p.store.Save(log)
		if saveErr != nil {
			logger.Warn("Failed to save run log: %v", saveErr)
		}
		if p.reporter != nil {
			p.reporter.RunSaved(path, saveErr)
		}
	}()

	run := p.prepare(ctx, log)
	session = run.Session

	p.started(5, phaseSession)
	if body == nil {
		return nil
	}
	return body(run)
}

func (p *PipelineService) prepare(ctx context.Context, log *domain.RunLog) *driving.Run {
	p.started(1, phaseCollection)
	raws, collection := p.collector.Collect(ctx, p.sources)
	log.Phases.Phase1 = collection
	p.finished(1, log)

	p.started(2, phaseExtraction)
	docs, extraction := p.extractor.Extract(ctx, raws)
	log.Phases.Phase2 = extraction
	p.finished(2, log)

	p.started(3, phaseKnowledgeBase)
	kb, knowledge := p.indexer.Build(ctx, docs)
	log.Phases.Phase3 = knowledge
	p.finished(3, log)

	p.started(4, phaseRetrieval)
	retriever := NewRetrieverService(kb, p.llm, p.table)
	retriever.SetPromptStore(p.promptStore)
	log.Phases.Phase4 = retriever.Status()
	p.finished(4, log)

	return &driving.Run{
		Log:     log,
		Session: NewSessionService(retriever, p.table),
		Entries: knowledge.Entries,
	}
}

func (p *PipelineService) started(phase int, name string) {
	logger.Phase(phase, name)
	if p.reporter != nil {
		p.reporter.PhaseStarted(phase, name)
	}
}

func (p *PipelineService) finished(phase int, log *domain.RunLog) {
	if p.reporter != nil {
		p.reporter.PhaseFinished(phase, log)
	}
}
