package driven

import "github.com/custodia-labs/cyberx-cli/internal/core/domain"

// RunLogStore persists run logs, one artifact per run.
type RunLogStore interface {
	// NextRunNumber returns one more than the highest existing run number,
	// or 1 when no artifacts exist.
	NextRunNumber() (int, error)

	// Save writes the log and returns the artifact location.
	// Failures wrap domain.ErrPersistence.
	Save(log *domain.RunLog) (string, error)
}
