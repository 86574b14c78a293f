package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driven"
	"github.com/patternpath/pagepatch/internal/core/ports/driving"
	"github.com/patternpath/pagepatch/internal/logger"
)

// Ensure Batch implements the interface.
var _ driving.BatchDriver = (*Batch)(nil)

// Batch runs the page pipeline over every document in a corpus.
// Documents share no state, so they are processed by a bounded pool of
// workers, one document per worker at a time.
type Batch struct {
	cfg       domain.Config
	corpus    driven.CorpusStore
	artifacts driven.ArtifactStore
	rewriter  *PageRewriter
	generator *Generator
}

// NewBatch creates a batch driver.
func NewBatch(
	cfg domain.Config,
	corpus driven.CorpusStore,
	artifacts driven.ArtifactStore,
	rewriter *PageRewriter,
	generator *Generator,
) *Batch {
	return &Batch{
		cfg:       cfg,
		corpus:    corpus,
		artifacts: artifacts,
		rewriter:  rewriter,
		generator: generator,
	}
}

// Run applies the pipeline to the corpus. Only domain.ErrCorpusNotFound
// (or cancellation) is returned as an error; everything else about a
// document ends up in its outcome.
func (b *Batch) Run(ctx context.Context, opts driving.RunOptions) (*domain.Report, error) {
	names, err := b.corpus.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(opts.Files) > 0 {
		names = opts.Files
	}
	steps := opts.Steps
	if len(steps) == 0 {
		steps = b.cfg.Transitions()
	}

	report := b.newReport(opts.DryRun)
	logger.Section("Run " + report.RunID)
	logger.Info("corpus %s: %d documents, steps %v", b.corpus.Root(), len(names), orderedSteps(steps))

	report.Outcomes = make([]domain.Outcome, len(names))
	err = b.forEach(ctx, len(names), func(ctx context.Context, i int) {
		report.Outcomes[i] = b.process(ctx, names[i], steps, opts.DryRun)
	})
	report.Duration = time.Since(report.StartedAt)
	if err != nil {
		return report, err
	}
	return report, nil
}

// RunFile applies the pipeline to a single document.
func (b *Batch) RunFile(ctx context.Context, name string, opts driving.RunOptions) domain.Outcome {
	steps := opts.Steps
	if len(steps) == 0 {
		steps = b.cfg.Transitions()
	}
	return b.process(ctx, name, steps, opts.DryRun)
}

// process runs the rewriter on one document and writes it back if it changed.
func (b *Batch) process(ctx context.Context, name string, steps []domain.Transition, dryRun bool) domain.Outcome {
	outcome := domain.Outcome{File: name}
	if b.cfg.IsExcluded(name) {
		outcome.Status = domain.StatusExcluded
		logger.With("file", name).Debug("excluded")
		return outcome
	}

	doc, err := b.corpus.Read(ctx, name)
	if err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		return outcome
	}

	result, rewriteErr := b.rewriter.Rewrite(ctx, doc, RewriteOptions{Steps: steps, DryRun: dryRun})
	outcome.Applied = result.Applied
	outcome.Notes = result.Notes
	outcome.State = result.State

	// Completed transitions are kept even when a later one failed; the
	// markers they leave make the next run resume from there.
	if result.Changed() && !dryRun {
		if err := b.corpus.Write(ctx, result.Document); err != nil {
			outcome.Status = domain.StatusFailed
			outcome.Err = fmt.Errorf("write %s: %w", name, err)
			return outcome
		}
	}

	switch {
	case rewriteErr == nil && result.Changed():
		outcome.Status = domain.StatusPatched
	case rewriteErr == nil:
		outcome.Status = domain.StatusAlreadyApplied
	case errors.Is(rewriteErr, domain.ErrAnchorNotFound):
		outcome.Status = domain.StatusAnchorMissing
		outcome.Err = rewriteErr
	default:
		outcome.Status = domain.StatusFailed
		outcome.Err = rewriteErr
	}
	if outcome.Err != nil {
		logger.Warn("%v", outcome.Err)
	}
	return outcome
}

// Generate writes a new document per descriptor, built from the master
// template. The master itself and excluded pages are never written.
func (b *Batch) Generate(ctx context.Context, opts driving.GenerateOptions) (*domain.Report, error) {
	if _, err := b.corpus.List(ctx); err != nil {
		return nil, err
	}
	templateName := opts.Template
	if templateName == "" {
		templateName = b.cfg.TemplateName
	}
	master, err := b.corpus.Read(ctx, templateName)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	var masterDesc *domain.PageDescriptor
	if d, ok := domain.FindDescriptor(opts.Descriptors, master.PageID); ok {
		masterDesc = &d
	}

	var pages []domain.PageDescriptor
	for _, d := range opts.Descriptors {
		if d.ID == master.PageID {
			logger.Debug("skipping master template %s", d.ID)
			continue
		}
		pages = append(pages, d)
	}

	report := b.newReport(opts.DryRun)
	logger.Section("Generate " + report.RunID)
	report.Outcomes = make([]domain.Outcome, len(pages))
	err = b.forEach(ctx, len(pages), func(ctx context.Context, i int) {
		report.Outcomes[i] = b.generateOne(ctx, master, masterDesc, pages[i], opts.DryRun)
	})
	report.Duration = time.Since(report.StartedAt)
	return report, err
}

func (b *Batch) generateOne(
	ctx context.Context,
	master domain.Document,
	masterDesc *domain.PageDescriptor,
	d domain.PageDescriptor,
	dryRun bool,
) domain.Outcome {
	outcome := domain.Outcome{File: d.FileName()}
	if b.cfg.IsExcluded(d.FileName()) {
		outcome.Status = domain.StatusExcluded
		return outcome
	}

	doc, artifact, err := b.generator.Render(master, masterDesc, d)
	if err != nil {
		outcome.Err = err
		outcome.Status = domain.StatusFailed
		if errors.Is(err, domain.ErrAnchorNotFound) {
			outcome.Status = domain.StatusAnchorMissing
		}
		return outcome
	}

	if !dryRun {
		if artifact != nil {
			if _, err := b.artifacts.Write(ctx, *artifact); err != nil {
				outcome.Status = domain.StatusFailed
				outcome.Err = err
				return outcome
			}
		}
		if err := b.corpus.Write(ctx, doc); err != nil {
			outcome.Status = domain.StatusFailed
			outcome.Err = err
			return outcome
		}
	}
	outcome.Status = domain.StatusPatched
	outcome.State = b.rewriter.Observe(doc.Content)
	logger.Info("generated %s", doc.Name)
	return outcome
}

// Status reports the observed state of each document without changing it.
func (b *Batch) Status(ctx context.Context) ([]domain.PageStatus, error) {
	names, err := b.corpus.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]domain.PageStatus, 0, len(names))
	for _, name := range names {
		doc, err := b.corpus.Read(ctx, name)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, domain.PageStatus{File: name, State: b.rewriter.Observe(doc.Content)})
	}
	return statuses, nil
}

func (b *Batch) newReport(dryRun bool) *domain.Report {
	return &domain.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    dryRun,
	}
}

// forEach calls fn for indexes [0, n) on at most cfg.Concurrency workers.
// fn reports through its own index, so workers never share a slot.
func (b *Batch) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	limit := b.cfg.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(gctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
