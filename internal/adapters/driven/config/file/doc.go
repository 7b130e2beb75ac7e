// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration at ~/.cyberx/config.toml
//   - PromptStore: editable prompt templates under ~/.cyberx/prompts
package file
