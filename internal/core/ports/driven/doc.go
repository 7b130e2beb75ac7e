// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PageFetcher: Fetches raw HTML (the direct fallback fetcher is always present)
//   - Normaliser: Turns fetched HTML into a RawDocument
//   - RunLogStore: Run-log persistence
//   - ConfigStore: Application configuration
//   - Console: Line-oriented interactive surface
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PageFetcher (primary): Only present when a scraping credential is configured.
//   - LLMService: Text completion. Without it, extraction uses the built-in dataset
//     and answers come from the static question table.
//   - EmbeddingService: Generates vector embeddings. Without it, semantic retrieval is disabled.
//   - SemanticIndex: Vector storage/search. Without it, semantic retrieval is disabled.
//   - PromptStore: Custom prompt templates. Without it, built-in prompts are used.
//   - ProgressReporter: Receives phase progress for display.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
