package driven

import (
	"context"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
)

// Normaliser transforms fetched HTML into a RawDocument.
// The same normaliser serves both collection paths so their output is identical.
type Normaliser interface {
	// Normalise extracts the title and paragraph content of a page.
	Normalise(ctx context.Context, url, html string) (domain.RawDocument, error)
}
