package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptExtraction turns a report into a threat record.
	// The template expects a %s placeholder for the report content.
	PromptExtraction = "extraction"

	// PromptRAGAnswer answers a question from retrieved context.
	// The template expects %s (context) and %s (question) placeholders.
	// A template with any other verb count is ignored in favour of the default.
	PromptRAGAnswer = "rag_answer"
)

// DefaultExtractionPrompt is the built-in PromptExtraction template.
const DefaultExtractionPrompt = `
You are a cybersecurity threat intelligence analyst.

Extract structured data from the report:
- actor (main threat actor name)
- aliases (list)
- ttps (list of tactics/techniques)
- targets (list of industries/countries/sectors)
- iocs (list)
- timeline

Return ONLY valid JSON object. Use empty lists if nothing found.

REPORT:
%s`

// DefaultRAGAnswerPrompt is the built-in PromptRAGAnswer template.
const DefaultRAGAnswerPrompt = `
Answer ONLY using context. Say "Insufficient data." if unknown.

CONTEXT:
%s

QUESTION:
%s
`
