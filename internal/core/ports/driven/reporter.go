package driven

import "github.com/custodia-labs/cyberx-cli/internal/core/domain"

// ProgressReporter receives pipeline progress for display.
// This is an optional service - when nil, progress is only logged.
type ProgressReporter interface {
	// PhaseStarted is called before a phase runs. phase is 1-based.
	PhaseStarted(phase int, name string)

	// PhaseFinished is called with the log after a phase records its section.
	PhaseFinished(phase int, log *domain.RunLog)

	// RunSaved is called once with the artifact location or the save error.
	RunSaved(path string, err error)
}
