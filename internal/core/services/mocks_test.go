package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockFetcher implements driven.PageFetcher for testing.
type mockFetcher struct {
	name   string
	pages  map[string]string
	errs   map[string]error
	mu     sync.Mutex
	called []string
}

func (m *mockFetcher) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (string, error) {
	m.mu.Lock()
	m.called = append(m.called, url)
	m.mu.Unlock()
	if err, ok := m.errs[url]; ok {
		return "", err
	}
	if page, ok := m.pages[url]; ok {
		return page, nil
	}
	return "", fmt.Errorf("%w: %s: status 404", domain.ErrSourceFetch, url)
}

// mockNormaliser implements driven.Normaliser for testing.
// The page body becomes the content; "FAIL" makes it error.
type mockNormaliser struct{}

func (m *mockNormaliser) Normalise(_ context.Context, url, html string) (domain.RawDocument, error) {
	if html == "FAIL" {
		return domain.RawDocument{}, errors.New("unparseable page")
	}
	return domain.NewRawDocument(url, "Title of "+url, html), nil
}

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	// respond returns the output for a prompt; defaults to a fixed record.
	respond func(call int, prompt string) (string, error)
	mu      sync.Mutex
	prompts []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	call := len(m.prompts)
	m.mu.Unlock()
	if m.respond != nil {
		return m.respond(call, prompt)
	}
	return `{"actor":"Mock Actor","aliases":[],"ttps":[],"targets":[],"iocs":[],"timeline":""}`, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Vectors are derived from keyword presence so related texts rank together.
type mockEmbeddingService struct {
	embedErr error
	failOn   string
}

var mockVocabulary = []string{"china", "ransomware", "apt31", "phishing", "espionage", "panda"}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.failOn != "" && strings.Contains(text, m.failOn) {
		return nil, errors.New("embedding backend unavailable")
	}
	lower := strings.ToLower(text)
	vec := make([]float32, len(mockVocabulary)+1)
	for i, word := range mockVocabulary {
		if strings.Contains(lower, word) {
			vec[i] = 1
		}
	}
	vec[len(mockVocabulary)] = 0.01
	return vec, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return len(mockVocabulary) + 1 }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockSemanticIndex implements driven.SemanticIndex, handing out a fresh
// mockCollection per call.
type mockSemanticIndex struct {
	collectionErr error
	clearErr      error
	opened        []*mockCollection
}

func (m *mockSemanticIndex) Collection(_ context.Context, _ string) (driven.Collection, error) {
	if m.collectionErr != nil {
		return nil, m.collectionErr
	}
	c := &mockCollection{clearErr: m.clearErr}
	m.opened = append(m.opened, c)
	return c, nil
}

func (m *mockSemanticIndex) Close() error { return nil }

// mockCollection implements driven.Collection and records additions.
type mockCollection struct {
	ids      []string
	texts    []string
	hits     []driven.IndexHit
	queryErr error
	clearErr error
	cleared  int
}

func (m *mockCollection) Name() string { return "mock" }

func (m *mockCollection) Add(_ context.Context, id, text string, _ []float32) error {
	m.ids = append(m.ids, id)
	m.texts = append(m.texts, text)
	return nil
}

func (m *mockCollection) Query(_ context.Context, _ []float32, k int) ([]driven.IndexHit, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if k < len(m.hits) {
		return m.hits[:k], nil
	}
	return m.hits, nil
}

func (m *mockCollection) Count(_ context.Context) (int, error) { return len(m.ids), nil }

func (m *mockCollection) Clear(_ context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared++
	m.ids, m.texts = nil, nil
	return nil
}

// mockRunLogStore implements driven.RunLogStore for testing.
type mockRunLogStore struct {
	next    int
	nextErr error
	saveErr error
	saved   []*domain.RunLog
}

func (m *mockRunLogStore) NextRunNumber() (int, error) {
	if m.nextErr != nil {
		return 0, m.nextErr
	}
	if m.next == 0 {
		return 1, nil
	}
	return m.next, nil
}

func (m *mockRunLogStore) Save(log *domain.RunLog) (string, error) {
	m.saved = append(m.saved, log)
	if m.saveErr != nil {
		return "", m.saveErr
	}
	return domain.ArtifactName("CyberX", log.RunNumber), nil
}

// mockConsole implements driven.Console over a fixed list of lines.
type mockConsole struct {
	lines   []string
	readErr error
	prompts []string
	output  []string
}

func (m *mockConsole) ReadLine(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if len(m.lines) == 0 {
		if m.readErr != nil {
			return "", m.readErr
		}
		return "", io.EOF
	}
	line := m.lines[0]
	m.lines = m.lines[1:]
	return line, nil
}

func (m *mockConsole) Println(text string) {
	m.output = append(m.output, text)
}

// failingRetriever fails the test if the semantic tier is ever reached.
type failingRetriever struct {
	t *testing.T
}

func (f *failingRetriever) Answer(_ context.Context, question string) (string, error) {
	f.t.Errorf("retriever must not be called for %q", question)
	return "unexpected", nil
}

func (f *failingRetriever) Status() *domain.RetrievalPhase {
	return &domain.RetrievalPhase{Description: domain.RetrievalDescription}
}

// recordingRetriever returns a fixed answer and records questions.
type recordingRetriever struct {
	answer    string
	err       error
	questions []string
}

func (r *recordingRetriever) Answer(_ context.Context, question string) (string, error) {
	r.questions = append(r.questions, question)
	return r.answer, r.err
}

func (r *recordingRetriever) Status() *domain.RetrievalPhase {
	return &domain.RetrievalPhase{Description: domain.RetrievalDescription}
}

// --- Fixtures ---

func testTable() domain.QATable {
	return domain.NewQATable([]domain.QAEntry{
		{Question: "Which threat actors are China-nexus?", Answer: "Earth Lamia, Jackpot Panda, APT31."},
		{Question: "Recent activities of APT31?", Answer: "APT31 targeted Russian IT in Nov 2025."},
	})
}

func testSubstitutes(n int) []domain.ThreatRecord {
	records := make([]domain.ThreatRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, domain.ThreatRecord{
			Actor:   fmt.Sprintf("Actor %d", i+1),
			Aliases: []string{fmt.Sprintf("Alias %d", i+1)},
			TTPs:    []string{"Phishing"},
			Targets: []string{"Global"},
		})
	}
	return records
}

func testSources(n int) []string {
	urls := make([]string, 0, n)
	for i := 0; i < n; i++ {
		urls = append(urls, fmt.Sprintf("https://news.example/%d.html", i))
	}
	return urls
}

func pagesFor(urls []string) map[string]string {
	pages := make(map[string]string, len(urls))
	for _, u := range urls {
		pages[u] = "content of " + u
	}
	return pages
}
