package domain

import (
	"path/filepath"
	"strings"
)

// DocumentExt is the file suffix of lesson pages in the corpus.
const DocumentExt = ".html"

// Document is the full text of one lesson page.
// It is the only entity the pipeline rewrites.
type Document struct {
	// Name is the file name within the corpus directory (e.g. "graphs.html").
	Name string

	// PageID identifies the page and its data artifact (e.g. "graphs").
	PageID string

	// Content is the complete page text.
	Content string
}

// NewDocument creates a document, deriving the page identifier from its name.
func NewDocument(name, content string) Document {
	return Document{
		Name:    name,
		PageID:  PageIDFromName(name),
		Content: content,
	}
}

// PageIDFromName derives a page identifier from a document file name.
func PageIDFromName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Contains reports whether the document holds the given marker.
func (d Document) Contains(marker string) bool {
	return strings.Contains(d.Content, marker)
}
