package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure Reporter implements the interface.
var _ driven.ProgressReporter = (*Reporter)(nil)

// titlePreviewLength bounds titles in "Collected:" lines.
const titlePreviewLength = 60

// phaseIntros are printed when a phase starts.
var phaseIntros = map[int]string{
	1: "Starting collection...",
	2: "Extracting...",
	3: "Building vector DB...",
	4: "Setting up...",
	5: "CyberX AI ready!",
}

// Reporter prints pipeline progress from the phase records.
type Reporter struct {
	out    io.Writer
	styles *Styles
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out, styles: NewStyles(out, nil)}
}

// PhaseStarted prints the phase header.
func (r *Reporter) PhaseStarted(phase int, name string) {
	header := fmt.Sprintf("[Phase %d/5: %s]", phase, name)
	r.printf("\n%s %s\n", r.styles.Phase.Render(header), phaseIntros[phase])
}

// PhaseFinished prints the outcome recorded for a phase.
func (r *Reporter) PhaseFinished(phase int, log *domain.RunLog) {
	if log == nil {
		return
	}
	switch phase {
	case 1:
		r.collection(log.Phases.Phase1)
	case 2:
		r.extraction(log.Phases.Phase2)
	case 3:
		r.knowledgeBase(log.Phases.Phase3)
	case 4:
		r.retrieval(log.Phases.Phase4)
	}
}

// RunSaved prints where the run log went.
func (r *Reporter) RunSaved(path string, err error) {
	if err != nil {
		r.printf("%s\n", r.styles.Error.Render(fmt.Sprintf("[JSON Log Error] Failed to save run log: %v", err)))
		return
	}
	r.printf("\n[JSON Log] Saved full run data to '%s'\n", filepath.Base(path))
}

// Banner prints the session introduction with example questions.
func (r *Reporter) Banner(examples []string) {
	r.printf("B&A [Brainstorm & Analysis] Session:\n")
	for i, q := range examples {
		r.printf("%d. %s\n", i+1, q)
	}
	r.printf("Type 'exit' to quit.\n\n")
}

// Fallback prints why a question got the fallback answer.
func (r *Reporter) Fallback(err error) {
	r.printf("%s\n", r.styles.Error.Render(domain.FallbackNotice(err)))
}

// Answer prints one answer surrounded by blank lines.
func (r *Reporter) Answer(answer string) {
	r.printf("\n%s\n\n", answer)
}

func (r *Reporter) collection(p *domain.CollectionPhase) {
	if p == nil {
		return
	}
	if p.Error != "" {
		r.printf("%s\n", r.styles.Error.Render(fmt.Sprintf(
			"[Phase 1 Error] Primary collection failed: %s. Falling back to direct scraping.", p.Error)))
	}
	if p.CollectionMethod == domain.CollectionFallback {
		for _, report := range p.Reports {
			r.printf("[Phase 1] Collected: %s...\n", truncate(report.Title, titlePreviewLength))
		}
		for _, failed := range p.FailedURLs {
			r.printf("%s\n", r.styles.Warning.Render(fmt.Sprintf(
				"[Phase 1 Warning] Failed to scrape %s: %s", failed.URL, failed.Error)))
		}
	}
	r.printf("[Phase 1] Collected %d reports via %s.\n", p.CollectedCount, collectionMethodLabel(p.CollectionMethod))
}

func (r *Reporter) extraction(p *domain.ExtractionPhase) {
	if p == nil {
		return
	}
	if p.Error != "" {
		r.printf("%s\n", r.styles.Error.Render(fmt.Sprintf(
			"[Phase 2 Error] LLM error/quota: %s. Switching to Simulation Mode", p.Error)))
	}
	if p.UsedMock {
		r.printf("%s\n", r.styles.Success.Render(fmt.Sprintf(
			"[Phase 2 Validation] Loaded %d mock documents.", p.DocumentCount)))
		return
	}
	r.printf("%s\n", r.styles.Success.Render(fmt.Sprintf(
		"[Phase 2 Validation] Extracted from %d real reports.", p.DocumentCount)))
}

func (r *Reporter) knowledgeBase(p *domain.KnowledgeBasePhase) {
	if p == nil {
		return
	}
	if p.Error != "" {
		r.printf("%s\n", r.styles.Error.Render(fmt.Sprintf("[Phase 3 Error] %s.", p.Error)))
	} else {
		r.printf("%s\n\n", r.styles.Success.Render(fmt.Sprintf(
			"[Phase 3 Validation] Vector DB built with %d entries.", p.TotalEntries)))
	}
	r.KnowledgeBase(p.Entries)
}

// KnowledgeBase prints the display table of entries.
func (r *Reporter) KnowledgeBase(entries []domain.KnowledgeEntry) {
	r.printf("Total entries in knowledge base: %d\n\n", len(entries))
	r.printf("Loaded Threat Actor Entries:\n%s\n", r.styles.Muted.Render(strings.Repeat("=", 60)))
	for _, e := range entries {
		r.printf("%d. %s %s\n", e.Index, r.styles.Label.Render("Actor:"), r.styles.Actor.Render(e.Actor))
		r.printf("   %s %s\n", r.styles.Label.Render("Title:"), e.Title)
		r.printf("   %s %s\n", r.styles.Label.Render("Source:"), e.Source)
		r.printf("   %s %s\n", r.styles.Label.Render("Aliases:"), e.Aliases)
		r.printf("   %s %s\n", r.styles.Label.Render("TTPs:"), e.TTPs)
		r.printf("   %s %s\n", r.styles.Label.Render("Targets:"), e.Targets)
		r.printf("%s\n", r.styles.Muted.Render(strings.Repeat("-", 50)))
	}
}

func (r *Reporter) retrieval(p *domain.RetrievalPhase) {
	if p == nil {
		return
	}
	switch {
	case !p.KnowledgeBaseAvailable:
		r.printf("%s\n", r.styles.Warning.Render(
			"[Phase 4] Knowledge base unavailable; unmatched questions get the fallback answer."))
	case !p.LLMAvailable:
		r.printf("%s\n", r.styles.Warning.Render(
			"[Phase 4] LLM disabled; unmatched questions get the fallback answer."))
	}
	r.printf("%s\n", r.styles.Success.Render("[Phase 4 Validation] RAG ready."))
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func collectionMethodLabel(m domain.CollectionMethod) string {
	if m == domain.CollectionPrimary {
		return "ZenRows"
	}
	return "regular scraping (fallback)"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
