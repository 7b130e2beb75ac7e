package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
)

type fakeSession struct {
	asked       []string
	finished    bool
	fallbackErr error
}

func (s *fakeSession) Ask(_ context.Context, question string) (string, error) {
	s.asked = append(s.asked, question)
	if s.fallbackErr != nil {
		return domain.InsufficientData, s.fallbackErr
	}
	return "answer to " + question, nil
}

func (s *fakeSession) Run(ctx context.Context, console driven.Console) {
	for {
		line, err := console.ReadLine(ctx, "CyberX AI > ")
		if err != nil || line == "exit" {
			return
		}
		answer, _ := s.Ask(ctx, line)
		console.Println(answer)
	}
}

func (s *fakeSession) Finish() { s.finished = true }

func (s *fakeSession) Phase() *domain.SessionPhase { return domain.NewSessionPhase(s.Examples()) }

func (s *fakeSession) Examples() []string { return []string{"Example one?"} }

type fakePipeline struct {
	session  *fakeSession
	reporter driven.ProgressReporter
	err      error
}

func (p *fakePipeline) Execute(_ context.Context, body func(run *driving.Run) error) error {
	if p.err != nil {
		return p.err
	}
	p.reporter.PhaseStarted(5, "CLI Interface")
	return body(&driving.Run{Log: domain.NewRunLog(1), Session: p.session})
}

// withFakes swaps the command collaborators for the duration of a test.
func withFakes(t *testing.T, settings domain.Settings, pipeline *fakePipeline) {
	t.Helper()
	origLoad, origPipeline := loadSettings, newPipeline
	loadSettings = func() (domain.Settings, error) { return settings, nil }
	newPipeline = func(_ context.Context, _ domain.Settings, reporter driven.ProgressReporter) (driving.Pipeline, func(), error) {
		pipeline.reporter = reporter
		return pipeline, func() {}, nil
	}
	t.Cleanup(func() {
		loadSettings, newPipeline = origLoad, origPipeline
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

func execute(args []string, stdin string) (string, string, error) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Interactive(t *testing.T) {
	session := &fakeSession{}
	withFakes(t, domain.DefaultSettings(), &fakePipeline{session: session})

	out, _, err := execute([]string{}, "What is APT31?\nexit\n")

	require.NoError(t, err)
	assert.Equal(t, []string{"What is APT31?"}, session.asked)
	assert.Contains(t, out, "[Phase 5/5: CLI Interface] CyberX AI ready!")
	assert.Contains(t, out, "B&A [Brainstorm & Analysis] Session:\n1. Example one?\n")
	assert.Contains(t, out, "CyberX AI > What is APT31?\n")
	assert.Contains(t, out, "answer to What is APT31?")
}

func TestRootCmd_PipelineError(t *testing.T) {
	withFakes(t, domain.DefaultSettings(), &fakePipeline{session: &fakeSession{}, err: errors.New("boom")})

	_, _, err := execute([]string{}, "")

	assert.EqualError(t, err, "boom")
}

func TestRootCmd_SettingsError(t *testing.T) {
	withFakes(t, domain.DefaultSettings(), &fakePipeline{session: &fakeSession{}})
	loadSettings = func() (domain.Settings, error) {
		return domain.Settings{}, domain.ErrInvalidInput
	}

	_, _, err := execute([]string{}, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskCmd(t *testing.T) {
	session := &fakeSession{}
	withFakes(t, domain.DefaultSettings(), &fakePipeline{session: session})

	out, _, err := execute([]string{"ask", "Recent", "activities?"}, "")

	require.NoError(t, err)
	assert.Equal(t, []string{"Recent activities?"}, session.asked)
	assert.True(t, session.finished)
	assert.Contains(t, out, "\nanswer to Recent activities?\n\n")
}

func TestAskCmd_PrintsFallbackNotice(t *testing.T) {
	session := &fakeSession{fallbackErr: domain.ErrIndexUnavailable}
	withFakes(t, domain.DefaultSettings(), &fakePipeline{session: session})

	out, _, err := execute([]string{"ask", "Who", "is", "Warp", "Panda?"}, "")

	require.NoError(t, err)
	assert.Contains(t, out, "[RAG Error] semantic index unavailable. Fallback answer.")
	assert.Contains(t, out, "\n"+domain.InsufficientData+"\n")
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	withFakes(t, domain.DefaultSettings(), &fakePipeline{session: &fakeSession{}})

	_, _, err := execute([]string{"ask"}, "")

	assert.Error(t, err)
}

func TestSourcesCmd(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Collector.Sources = []string{"https://one.example", "https://two.example"}
	withFakes(t, settings, &fakePipeline{session: &fakeSession{}})

	out, _, err := execute([]string{"sources"}, "")

	require.NoError(t, err)
	assert.Contains(t, out, "Sources (2):")
	assert.Contains(t, out, " 1. https://one.example")
	assert.Contains(t, out, " 2. https://two.example")
}

func TestSourcesCmd_Empty(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Collector.Sources = nil
	withFakes(t, settings, &fakePipeline{session: &fakeSession{}})

	out, _, err := execute([]string{"sources"}, "")

	require.NoError(t, err)
	assert.Contains(t, out, "No sources configured.")
}

func TestConfigCmd_MasksCredentials(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.LLM.Key = domain.Configured("gemini-secret-key-123456")
	settings.Collector.ZenRows = domain.Configured("zenrows-secret-key-abcdef")
	withFakes(t, settings, &fakePipeline{session: &fakeSession{}})

	out, _, err := execute([]string{"config"}, "")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "[Collector]")
	assert.Contains(t, out, "[Index]")
	assert.Contains(t, out, "(in-memory)")
	assert.Contains(t, out, "CyberX #1.json")
	assert.NotContains(t, out, "gemini-secret-key-123456")
	assert.NotContains(t, out, "zenrows-secret-key-abcdef")
}

type fakeValidator struct {
	llmErr error
}

func (v fakeValidator) ValidateEmbedding(context.Context, *domain.EmbeddingSettings) error {
	return nil
}

func (v fakeValidator) ValidateLLM(context.Context, *domain.LLMSettings) error {
	return v.llmErr
}

func TestConfigCmd_Check(t *testing.T) {
	withFakes(t, domain.DefaultSettings(), &fakePipeline{session: &fakeSession{}})
	origValidator := newValidator
	newValidator = func() driven.AIConfigValidator {
		return fakeValidator{llmErr: errors.New("no key")}
	}
	defer func() {
		newValidator = origValidator
		configCheck = false
	}()

	out, _, err := execute([]string{"config", "--check"}, "")

	require.NoError(t, err)
	assert.Contains(t, out, "LLM: no key")
	assert.Contains(t, out, "Embedding: ok")
}
