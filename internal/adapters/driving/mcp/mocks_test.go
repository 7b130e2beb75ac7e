package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// mockSession is a mock implementation of driving.Session for testing.
type mockSession struct {
	mu       sync.Mutex
	answers  map[string]string
	asked    []string
	finished bool
}

func (m *mockSession) Ask(_ context.Context, question string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.asked = append(m.asked, question)
	if answer, ok := m.answers[question]; ok {
		return answer, nil
	}
	return domain.InsufficientData, domain.ErrIndexUnavailable
}

func (m *mockSession) Run(context.Context, driven.Console) {}

func (m *mockSession) Finish() {
	m.finished = true
}

func (m *mockSession) Phase() *domain.SessionPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	phase := domain.NewSessionPhase(nil)
	phase.Queries = append(phase.Queries, m.asked...)
	return phase
}

func (m *mockSession) Examples() []string {
	return []string{"Which threat actors are China-nexus?", "Recent activities of APT31?"}
}

func testEntries() []domain.KnowledgeEntry {
	return []domain.KnowledgeEntry{
		{Index: 1, Actor: "Earth Lamia", Title: "Mock Threat Report 1", Aliases: "China-nexus", TTPs: "RCE Exploitation", Targets: "Global Servers"},
		{Index: 2, Actor: "Jackpot Panda", Title: "Mock Threat Report 2", Aliases: "China-nexus", TTPs: "Crypto Mining", Targets: "Web Infrastructure"},
	}
}
