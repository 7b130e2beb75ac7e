package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.Session = (*SessionService)(nil)

// SessionPrompt is shown before each question.
const SessionPrompt = "CyberX AI > "

// SessionService is the interactive question loop. Questions matching the
// static table are answered directly and never reach the Retriever.
type SessionService struct {
	retriever driving.Retriever
	table     domain.QATable

	mu    sync.Mutex
	phase *domain.SessionPhase
}

// NewSessionService creates a session in the running state.
func NewSessionService(retriever driving.Retriever, table domain.QATable) *SessionService {
	return &SessionService{
		retriever: retriever,
		table:     table,
		phase:     domain.NewSessionPhase(table.Questions()),
	}
}

// Ask logs the question and answers it. The error is the Retriever's
// fallback diagnostic; table answers never carry one.
func (s *SessionService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)

	s.mu.Lock()
	s.phase.Queries = append(s.phase.Queries, question)
	s.mu.Unlock()

	if answer, ok := s.table.Lookup(question); ok {
		logger.Debug("Static table answer for %q", question)
		return answer, nil
	}
	if s.retriever == nil {
		return domain.InsufficientData, domain.ErrIndexUnavailable
	}
	return s.retriever.Answer(ctx, question)
}

// Run reads questions until "exit"/"quit" (completed) or the end of
// input or cancellation (aborted). Blank lines are ignored.
func (s *SessionService) Run(ctx context.Context, console driven.Console) {
	for {
		if ctx.Err() != nil {
			s.finish(domain.SessionAborted)
			return
		}

		line, err := console.ReadLine(ctx, SessionPrompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn("Reading input failed: %v", err)
			}
			logger.Debug("%v", domain.ErrSessionAborted)
			s.finish(domain.SessionAborted)
			return
		}

		if domain.IsTerminationKeyword(line) {
			console.Println("Session ended.")
			s.finish(domain.SessionCompleted)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		answer, err := s.Ask(ctx, line)
		if err != nil {
			console.Println(domain.FallbackNotice(err))
		}
		console.Println("\n" + answer + "\n")
	}
}

// Finish marks the session completed unless it already ended.
// Non-interactive surfaces call this when they stop serving questions.
func (s *SessionService) Finish() {
	s.finish(domain.SessionCompleted)
}

func (s *SessionService) finish(status domain.SessionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Status == domain.SessionRunning {
		s.phase.Status = status
	}
}

// Phase returns a snapshot of the session's run-log section.
func (s *SessionService) Phase() *domain.SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := *s.phase
	snapshot.PredefinedQuestions = cloneStrings(s.phase.PredefinedQuestions)
	snapshot.Queries = cloneStrings(s.phase.Queries)
	return &snapshot
}

// Examples returns the predefined questions as written.
func (s *SessionService) Examples() []string {
	entries := s.table.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Question)
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
