// Package runlog persists run logs as pretty-printed JSON files, one per run.
package runlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.RunLogStore = (*Store)(nil)

// DefaultProduct names the artifacts, e.g. "CyberX #1.json".
const DefaultProduct = "CyberX"

// Store writes run logs into a directory.
type Store struct {
	dir     string
	product string
}

// NewStore creates a store writing into dir. An empty dir means the
// working directory; an empty product means DefaultProduct.
func NewStore(dir, product string) *Store {
	if dir == "" {
		dir = "."
	}
	if product == "" {
		product = DefaultProduct
	}
	return &Store{dir: dir, product: product}
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// NextRunNumber scans the directory for existing artifacts.
// A missing directory means no runs yet.
func (s *Store) NextRunNumber() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: scan %s: %w", domain.ErrPersistence, s.dir, err)
	}

	highest := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if n, ok := domain.ParseArtifactName(s.product, entry.Name()); ok && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// Save writes the log as "<product> #<run>.json" and returns its path.
func (s *Store) Save(log *domain.RunLog) (string, error) {
	if log == nil {
		return "", fmt.Errorf("%w: nil run log", domain.ErrPersistence)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		return "", fmt.Errorf("%w: encode run log: %w", domain.ErrPersistence, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: create %s: %w", domain.ErrPersistence, s.dir, err)
	}

	path := filepath.Join(s.dir, domain.ArtifactName(s.product, log.RunNumber))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, path, err)
	}

	logger.Debug("Saved run log %d to %s", log.RunNumber, path)
	return path, nil
}
