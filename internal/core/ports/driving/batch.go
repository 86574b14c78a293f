package driving

import (
	"context"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

// BatchDriver applies the page pipeline across a corpus.
type BatchDriver interface {
	// Run patches every document in the corpus (or only opts.Files).
	// Per-document failures are reported in the outcome list; only a
	// missing corpus aborts the run.
	Run(ctx context.Context, opts RunOptions) (*domain.Report, error)

	// RunFile patches a single document. opts.Files is ignored.
	RunFile(ctx context.Context, name string, opts RunOptions) domain.Outcome

	// Generate creates new documents from a master template.
	Generate(ctx context.Context, opts GenerateOptions) (*domain.Report, error)

	// Status returns the observed state of every document.
	Status(ctx context.Context) ([]domain.PageStatus, error)
}

// RunOptions controls a batch run.
type RunOptions struct {
	// Files limits the run to these document names. Empty means all.
	Files []string

	// Steps selects transitions. Empty means the configured default.
	Steps []domain.Transition

	// DryRun reports outcomes without writing anything.
	DryRun bool
}

// GenerateOptions controls bulk generation.
type GenerateOptions struct {
	// Template is the master document's file name in the corpus.
	Template string

	// Descriptors are the pages to generate.
	Descriptors []domain.PageDescriptor

	// DryRun reports outcomes without writing anything.
	DryRun bool
}
