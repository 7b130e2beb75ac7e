package services

import (
	"strings"

	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// loadPrompt returns the named template from store, or fallback when the
// store is absent, fails, returns an empty template, or returns one whose
// verbs do not match: exactly verbs %s and no other verb except %%.
func loadPrompt(store driven.PromptStore, name, fallback string, verbs int) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		logger.Warn("Failed to load prompt %q, using default: %v", name, err)
		return fallback
	}
	if strings.TrimSpace(prompt) == "" {
		return fallback
	}
	if !hasVerbs(prompt, verbs) {
		logger.Warn("Prompt %q must contain exactly %d %%s placeholder(s) and escape literal %% as %%%%, using default", name, verbs)
		return fallback
	}
	return prompt
}

// hasVerbs reports whether every unescaped % in template starts a %s verb
// and there are exactly n of them.
func hasVerbs(template string, n int) bool {
	unescaped := strings.ReplaceAll(template, "%%", "")
	count := strings.Count(unescaped, "%s")
	return count == n && strings.Count(unescaped, "%") == count
}
