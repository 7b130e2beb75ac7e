package html

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML pages.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise parses page into a RawDocument.
//
// The title is the first <h1>, else the first <title>, else
// domain.TitleNotFound. Content is the trimmed text of every <p>,
// space-joined and bounded to domain.MaxContentLength characters.
func (n *Normaliser) Normalise(_ context.Context, url, page string) (domain.RawDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("%w: parse html: %w", domain.ErrParse, err)
	}

	return domain.NewRawDocument(url, extractTitle(doc), extractParagraphs(doc)), nil
}

func extractTitle(doc *goquery.Document) string {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return collapseSpace(h1.Text())
	}
	if title := doc.Find("title").First(); title.Length() > 0 {
		return collapseSpace(title.Text())
	}
	return ""
}

func extractParagraphs(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapseSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, " ")
}

// collapseSpace trims s and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
