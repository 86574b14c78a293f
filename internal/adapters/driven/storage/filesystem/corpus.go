package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore reads and writes documents in a single, flat directory.
type CorpusStore struct {
	root string
}

// NewCorpusStore creates a store rooted at dir.
func NewCorpusStore(dir string) *CorpusStore {
	return &CorpusStore{root: dir}
}

// Root returns the corpus directory.
func (s *CorpusStore) Root() string {
	return s.root
}

// List returns the names of all documents directly inside the corpus
// directory. Subdirectories are not descended into.
func (s *CorpusStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, s.root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrCorpusNotFound, s.root)
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), domain.DocumentExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read loads a document by file name.
func (s *CorpusStore) Read(ctx context.Context, name string) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	path, err := s.path(name)
	if err != nil {
		return domain.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Document{}, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		}
		return domain.Document{}, err
	}
	return domain.NewDocument(filepath.Base(path), string(data)), nil
}

// Write replaces a document, keeping its existing permissions.
func (s *CorpusStore) Write(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(doc.Name)
	if err != nil {
		return err
	}
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return writeFile(path, []byte(doc.Content), perm)
}

// path resolves a document name inside the corpus, rejecting traversal.
func (s *CorpusStore) path(name string) (string, error) {
	base := filepath.Base(name)
	if name == "" || base != name || base == "." || base == ".." {
		return "", fmt.Errorf("%w: document name %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(s.root, base), nil
}
