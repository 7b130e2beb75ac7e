package mcp

import (
	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server reads from a prepared run.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session answers questions and records them in the run log.
	Session driving.Session

	// Entries are the knowledge base display rows.
	Entries []domain.KnowledgeEntry
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	// Entries may be empty when nothing was extracted.
	return nil
}
