package driven

import (
	"context"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

// CorpusStore reads and writes the lesson pages of a corpus directory.
type CorpusStore interface {
	// List returns the document file names in the corpus, sorted.
	// Returns domain.ErrCorpusNotFound when the corpus directory is missing.
	List(ctx context.Context) ([]string, error)

	// Read loads a document by file name.
	Read(ctx context.Context, name string) (domain.Document, error)

	// Write replaces a document's content on disk.
	Write(ctx context.Context, doc domain.Document) error

	// Root returns the corpus directory.
	Root() string
}
