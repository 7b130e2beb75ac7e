package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// Pipeline Errors.

	// ErrSourceFetch indicates a page could not be fetched or parsed.
	// Per source on the fallback path, pipeline-wide on the primary path.
	ErrSourceFetch = errors.New("source fetch failed")

	// ErrGeneration indicates a text-completion call failed or hit its quota.
	ErrGeneration = errors.New("generation failed")

	// ErrParse indicates the model returned malformed JSON.
	// Recovered by keeping the raw text, never by dropping the document.
	ErrParse = errors.New("parse failed")

	// ErrIndexUnavailable indicates the semantic index could not be built or queried.
	// Semantic retrieval is disabled for the rest of the run.
	ErrIndexUnavailable = errors.New("semantic index unavailable")

	// ErrPersistence indicates the run log could not be written.
	ErrPersistence = errors.New("persistence failed")

	// ErrSessionAborted indicates the input stream ended before a termination keyword.
	ErrSessionAborted = errors.New("session aborted")

	// Capability Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured or disabled.
	// Extraction falls back to the built-in dataset and retrieval to the static table.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Semantic retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
