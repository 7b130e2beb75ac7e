package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxContentLength bounds RawDocument content to keep prompts small.
	MaxContentLength = 10000

	// PreviewLength is the size of the content preview kept in the run log.
	PreviewLength = 500

	// TitleNotFound is used when a page has neither a heading nor a title.
	TitleNotFound = "Title Not Found"

	// UnknownActor is displayed when a document holds no structured actor.
	UnknownActor = "Unknown"

	// NoValues is displayed when a set field is empty or unavailable.
	NoValues = "None"
)

// RawDocument is a scraped article before extraction.
type RawDocument struct {
	// URL is the source location.
	URL string `json:"url"`

	// Title is the first heading, else the page title, else TitleNotFound.
	Title string `json:"title"`

	// Content is the paragraph text, at most MaxContentLength characters.
	Content string `json:"content"`
}

// NewRawDocument builds a RawDocument, applying the title default and the
// content bound.
func NewRawDocument(url, title, content string) RawDocument {
	title = strings.TrimSpace(title)
	if title == "" {
		title = TitleNotFound
	}
	return RawDocument{
		URL:     url,
		Title:   title,
		Content: TruncateContent(content),
	}
}

// Preview returns the first PreviewLength characters, with "..." appended
// when the content was longer.
func (d RawDocument) Preview() string {
	if utf8.RuneCountInString(d.Content) <= PreviewLength {
		return d.Content
	}
	return truncateRunes(d.Content, PreviewLength) + "..."
}

// Summary returns the log form of the document.
func (d RawDocument) Summary() ReportSummary {
	return ReportSummary{URL: d.URL, Title: d.Title, ContentPreview: d.Preview()}
}

// TruncateContent bounds s to MaxContentLength characters.
func TruncateContent(s string) string {
	return truncateRunes(s, MaxContentLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ReportSummary is the run-log view of a RawDocument.
type ReportSummary struct {
	URL            string `json:"url"`
	Title          string `json:"title"`
	ContentPreview string `json:"content_preview"`
}

// FailedSource records a source that could not be collected.
type FailedSource struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Document wraps threat intelligence with its provenance.
type Document struct {
	// Title is the article title or the substitute report title.
	Title string `json:"title"`

	// Source is the article URL or the substitute feed name.
	Source string `json:"source"`

	// ThreatIntelligence is the extracted record or the unparsed output.
	ThreatIntelligence ThreatIntel `json:"threat_intelligence"`
}

// KnowledgeEntry is the flattened display row for one indexed document.
type KnowledgeEntry struct {
	Index   int    `json:"index"`
	Actor   string `json:"actor"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Aliases string `json:"aliases"`
	TTPs    string `json:"ttps"`
	Targets string `json:"targets"`
}

// NewKnowledgeEntry flattens a document into a display row. index is
// 1-based. Unparsed documents show UnknownActor and NoValues.
func NewKnowledgeEntry(index int, doc Document) KnowledgeEntry {
	entry := KnowledgeEntry{
		Index:   index,
		Actor:   UnknownActor,
		Title:   doc.Title,
		Source:  doc.Source,
		Aliases: NoValues,
		TTPs:    NoValues,
		Targets: NoValues,
	}
	record, ok := doc.ThreatIntelligence.Record()
	if !ok {
		return entry
	}
	if record.Actor != "" {
		entry.Actor = record.Actor
	}
	entry.Aliases = joinOrNone(record.Aliases)
	entry.TTPs = joinOrNone(record.TTPs)
	entry.Targets = joinOrNone(record.Targets)
	return entry
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return NoValues
	}
	return strings.Join(values, ", ")
}

// CanonicalJSON returns the stable JSON encoding used as the indexed text.
func (d Document) CanonicalJSON() ([]byte, error) {
	return marshalNoEscape(d)
}
