package domain

import "strings"

// Termination keywords for the interactive session.
var terminationKeywords = map[string]struct{}{
	"exit": {},
	"quit": {},
}

// InsufficientData is the answer when nothing else is available.
const InsufficientData = "Insufficient data."

// FallbackNotice is the diagnostic printed when a question skipped grounded
// generation and got the fallback answer instead.
func FallbackNotice(err error) string {
	return "[RAG Error] " + err.Error() + ". Fallback answer."
}

// NormalizeQuestion lower-cases and trims a question for table lookup.
func NormalizeQuestion(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// IsTerminationKeyword reports whether input ends the session.
func IsTerminationKeyword(input string) bool {
	_, ok := terminationKeywords[NormalizeQuestion(input)]
	return ok
}

// QAEntry is one predefined question and its canned answer.
type QAEntry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// QATable is an immutable mapping from normalised questions to answers.
type QATable struct {
	entries []QAEntry
	answers map[string]string
}

// NewQATable builds a table. Later duplicates of a normalised question
// are ignored.
func NewQATable(entries []QAEntry) QATable {
	t := QATable{
		entries: make([]QAEntry, 0, len(entries)),
		answers: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		key := NormalizeQuestion(e.Question)
		if key == "" {
			continue
		}
		if _, dup := t.answers[key]; dup {
			continue
		}
		t.answers[key] = e.Answer
		t.entries = append(t.entries, e)
	}
	return t
}

// Lookup returns the canned answer for a question, if any.
func (t QATable) Lookup(question string) (string, bool) {
	answer, ok := t.answers[NormalizeQuestion(question)]
	return answer, ok
}

// Questions returns the normalised keys in insertion order.
func (t QATable) Questions() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, NormalizeQuestion(e.Question))
	}
	return out
}

// Entries returns a copy of the table's entries as written.
func (t QATable) Entries() []QAEntry {
	out := make([]QAEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t QATable) Len() int {
	return len(t.entries)
}
