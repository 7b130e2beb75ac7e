package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// Ensure CollectorService implements the interface.
var _ driving.Collector = (*CollectorService)(nil)

// errNoFetcher is recorded for every source when no fallback fetcher exists.
var errNoFetcher = errors.New("no page fetcher configured")

// CollectorService gathers raw documents through a primary fetcher with
// automatic fallback to a secondary one.
//
// The two paths fail differently. Any failure on the primary path abandons
// the whole primary pass and restarts collection on the fallback path. On
// the fallback path each source fails on its own and is listed in the
// phase record.
type CollectorService struct {
	primary    driven.PageFetcher
	fallback   driven.PageFetcher
	normaliser driven.Normaliser
}

// NewCollectorService creates a collector.
// primary is optional (nil when no scraping credential is configured).
func NewCollectorService(primary, fallback driven.PageFetcher, normaliser driven.Normaliser) *CollectorService {
	return &CollectorService{
		primary:    primary,
		fallback:   fallback,
		normaliser: normaliser,
	}
}

// Collect fetches and parses every source.
func (s *CollectorService) Collect(
	ctx context.Context, sources []string,
) ([]domain.RawDocument, *domain.CollectionPhase) {
	phase := domain.NewCollectionPhase()

	if s.primary != nil {
		logger.Info("Using %s for collection", s.primary.Name())
		docs, err := s.collectPrimary(ctx, sources)
		if err == nil {
			phase.CollectionMethod = domain.CollectionPrimary
			s.record(phase, docs)
			logger.Info("Collected %d reports via %s", len(docs), s.primary.Name())
			return docs, phase
		}
		logger.Warn("Primary collection failed, falling back: %v", err)
		phase.Error = err.Error()
	}

	phase.CollectionMethod = domain.CollectionFallback
	docs := s.collectFallback(ctx, sources, phase)
	s.record(phase, docs)
	logger.Info("Collected %d reports via fallback (%d failed)", len(docs), len(phase.FailedURLs))
	return docs, phase
}

// collectPrimary is all-or-nothing: the first failure discards everything
// collected so far.
func (s *CollectorService) collectPrimary(ctx context.Context, sources []string) ([]domain.RawDocument, error) {
	docs := make([]domain.RawDocument, 0, len(sources))
	for _, url := range sources {
		doc, err := s.fetchOne(ctx, s.primary, url)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// collectFallback isolates failures per source.
func (s *CollectorService) collectFallback(
	ctx context.Context, sources []string, phase *domain.CollectionPhase,
) []domain.RawDocument {
	docs := make([]domain.RawDocument, 0, len(sources))
	for _, url := range sources {
		if s.fallback == nil {
			phase.FailedURLs = append(phase.FailedURLs, domain.FailedSource{
				URL:   url,
				Error: fmt.Errorf("%w: %w", domain.ErrSourceFetch, errNoFetcher).Error(),
			})
			continue
		}
		doc, err := s.fetchOne(ctx, s.fallback, url)
		if err != nil {
			logger.Warn("Failed to scrape %s: %v", url, err)
			phase.FailedURLs = append(phase.FailedURLs, domain.FailedSource{URL: url, Error: err.Error()})
			continue
		}
		logger.Debug("Collected: %s", doc.Title)
		docs = append(docs, doc)
	}
	return docs
}

func (s *CollectorService) fetchOne(ctx context.Context, fetcher driven.PageFetcher, url string) (domain.RawDocument, error) {
	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.RawDocument{}, err
	}
	doc, err := s.normaliser.Normalise(ctx, url, html)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("%w: parse %s: %w", domain.ErrSourceFetch, url, err)
	}
	return doc, nil
}

func (s *CollectorService) record(phase *domain.CollectionPhase, docs []domain.RawDocument) {
	for _, doc := range docs {
		phase.Reports = append(phase.Reports, doc.Summary())
	}
	phase.CollectedCount = len(docs)
}
