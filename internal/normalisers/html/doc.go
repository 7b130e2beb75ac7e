// Package html provides a Normaliser implementation for scraped article pages.
// It takes the first heading as the title and joins paragraph text into the
// document content.
package html
