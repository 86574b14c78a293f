package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driven"
	"github.com/patternpath/pagepatch/internal/logger"
	"github.com/patternpath/pagepatch/internal/markup"
)

// RewriteOptions controls a single page rewrite.
type RewriteOptions struct {
	// Steps selects transitions. Empty means the default pipeline.
	Steps []domain.Transition

	// DryRun computes the new text without writing the data artifact.
	DryRun bool
}

// RewriteResult is the outcome of rewriting one document in memory.
type RewriteResult struct {
	// Document holds the rewritten text.
	Document domain.Document

	// Applied lists the transitions that changed the document.
	Applied []domain.Transition

	// Notes holds non-fatal messages, such as optional anchors not found.
	Notes []string

	// State is the observed state of the rewritten text.
	State domain.PageState

	// ArtifactPath is set when a data artifact was written.
	ArtifactPath string
}

// Changed reports whether any transition modified the document.
func (r *RewriteResult) Changed() bool {
	return len(r.Applied) > 0
}

// page is the mutable working copy of a document during a rewrite.
type page struct {
	doc    domain.Document
	opts   RewriteOptions
	notes  []string
	result *RewriteResult
}

func (p *page) note(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.notes = append(p.notes, msg)
	logger.Warn("%s: %s", p.doc.Name, msg)
}

// step is one transition of the page state machine.
type step struct {
	name domain.Transition
	// afterRows steps may only run once the rows are externalised.
	afterRows bool
	apply     func(ctx context.Context, p *page) error
}

// PageRewriter drives a document through the patch state machine:
// Unpatched -> RowsExternalized -> WidgetsInjected -> ScriptsLinked -> Done.
// Progress is read back from markers in the document itself, so every
// transition can be re-run safely and only missing work is applied.
type PageRewriter struct {
	extractor    driven.RowExtractor
	artifacts    driven.ArtifactStore
	dataPrefix   string
	assetsPrefix string
	steps        []step
}

// NewPageRewriter creates a rewriter. dataPrefix is where the render
// script imports artifacts from; assetsPrefix is where activation
// scripts live.
func NewPageRewriter(
	extractor driven.RowExtractor,
	artifacts driven.ArtifactStore,
	dataPrefix string,
	assetsPrefix string,
) *PageRewriter {
	r := &PageRewriter{
		extractor:    extractor,
		artifacts:    artifacts,
		dataPrefix:   dataPrefix,
		assetsPrefix: assetsPrefix,
	}
	r.steps = []step{
		{name: domain.TransitionRows, apply: r.externalizeRows},
		{name: domain.TransitionWidgets, afterRows: true, apply: r.injectWidgets},
		{name: domain.TransitionScripts, afterRows: true, apply: r.linkScripts},
		{name: domain.TransitionCleanup, afterRows: true, apply: r.cleanupDrift},
		{name: domain.TransitionAnimations, apply: r.staggerAnimations},
	}
	return r
}

// Rewrite applies the selected transitions to doc in state-machine order.
// A transition whose marker is present is a no-op. A failing transition
// stops the remaining ones; the returned result still holds the work of
// the transitions that completed, and the error is a *domain.TransitionError.
func (r *PageRewriter) Rewrite(ctx context.Context, doc domain.Document, opts RewriteOptions) (*RewriteResult, error) {
	result := &RewriteResult{Document: doc}
	p := &page{doc: doc, opts: opts, result: result}
	selected := selectSteps(opts.Steps)

	logger.Debug("rewriting %s (state %s)", doc.Name, r.Observe(doc.Content))

	var failure error
	for _, s := range r.steps {
		if !selected[s.name] {
			continue
		}
		if err := ctx.Err(); err != nil {
			failure = err
			break
		}
		if s.afterRows && !p.doc.Contains(mountMarker) {
			failure = &domain.TransitionError{File: doc.Name, Transition: s.name,
				Err: fmt.Errorf("%w: rows not externalized", domain.ErrOutOfOrder)}
			break
		}

		before := p.doc.Content
		err := s.apply(ctx, p)
		if errors.Is(err, domain.ErrAlreadyApplied) {
			logger.Debug("%s: %s already applied", doc.Name, s.name)
			continue
		}
		if err != nil {
			failure = &domain.TransitionError{File: doc.Name, Transition: s.name, Err: err}
			break
		}
		if p.doc.Content != before {
			result.Applied = append(result.Applied, s.name)
			logger.Debug("%s: applied %s", doc.Name, s.name)
		}
	}

	result.Document = p.doc
	result.Notes = p.notes
	result.State = r.Observe(p.doc.Content)
	return result, failure
}

// Observe derives a document's state from the markers it contains.
func (r *PageRewriter) Observe(content string) domain.PageState {
	switch {
	case !strings.Contains(content, mountMarker):
		return domain.StateUnpatched
	case !strings.Contains(content, percentMarker) ||
		!strings.Contains(content, countMarker) ||
		!strings.Contains(content, creditsMarker):
		return domain.StateRowsExternalized
	case !strings.Contains(content, r.scriptPath("progress.js")) ||
		!strings.Contains(content, r.scriptPath("credits.js")):
		return domain.StateWidgetsInjected
	}
	if _, drift := findDrift(content); drift {
		return domain.StateScriptsLinked
	}
	return domain.StateDone
}

// externalizeRows extracts the inline rows into a data artifact, collapses
// the row block into the empty mount container and appends the render script.
func (r *PageRewriter) externalizeRows(ctx context.Context, p *page) error {
	if p.doc.Contains(mountMarker) {
		return domain.ErrAlreadyApplied
	}
	content := p.doc.Content

	start, ok := markup.Locate(content, rowContainer)
	if !ok {
		return fmt.Errorf("%s: %w", rowContainer.Name(), domain.ErrAnchorNotFound)
	}
	if n := markup.Count(content, rowContainer); n > 1 {
		p.note("%s: %v: appears %d times, only the first is externalized", rowContainer.Name(), domain.ErrAmbiguousAnchor, n)
	}

	block, err := markup.ClosingPair(content, start.Start)
	if err != nil {
		return err
	}
	records, err := r.extractor.Extract(block.Text(content))
	if err != nil {
		return fmt.Errorf("extract rows: %w", err)
	}
	artifact := domain.DataArtifact{PageID: p.doc.PageID, Problems: domain.Reindex(records)}
	if err := artifact.Validate(); err != nil {
		return err
	}

	out, err := markup.Inject(content, start, mountBlock, markup.ReplaceToClosingPair)
	if err != nil {
		return err
	}
	script, err := execute(renderScriptTmpl, map[string]string{
		"DataPrefix": r.dataPrefix,
		"PageID":     p.doc.PageID,
	})
	if err != nil {
		return fmt.Errorf("render script: %w", err)
	}
	out, err = markup.InjectAt(out, bodyClose, script, markup.Before)
	if err != nil {
		return err
	}

	// The artifact is written only once the new text is fully computed.
	if !p.opts.DryRun {
		path, err := r.artifacts.Write(ctx, artifact)
		if err != nil {
			return fmt.Errorf("write artifact: %w", err)
		}
		p.result.ArtifactPath = path
		logger.Info("wrote %s (%d problems)", path, len(artifact.Problems))
	}
	p.doc.Content = out
	return nil
}

// injectWidgets tags the progress displays and any inline checkboxes, and
// inserts the credits panel before the user profile. Each part is gated on
// its own marker; missing anchors are noted, not fatal.
func (r *PageRewriter) injectWidgets(_ context.Context, p *page) error {
	content := p.doc.Content
	pending := false

	if !strings.Contains(content, percentMarker) {
		pending = true
		content = r.tag(p, content, percentDisplay, percentTagged)
	}
	if !strings.Contains(content, countMarker) {
		pending = true
		content = r.tag(p, content, countDisplay, countTagged)
	}
	// Untagged checkboxes are their own marker: once tagged they no longer match.
	content, n := markup.ReplaceEach(content, inlineCheckbox, func(i int, _ string) string {
		return fmt.Sprintf(checkboxTagged, p.doc.PageID, i)
	})
	pending = pending || n > 0
	if !strings.Contains(content, creditsMarker) {
		pending = true
		if span, ok := markup.Locate(content, userProfile); ok {
			var err error
			if content, err = markup.Inject(content, span, creditsPanel, markup.Before); err != nil {
				return err
			}
		} else {
			p.note("%s: %v, credits panel not injected", userProfile.Name(), domain.ErrAnchorNotFound)
		}
	}

	if !pending {
		return domain.ErrAlreadyApplied
	}
	p.doc.Content = content
	return nil
}

// tag replaces the first occurrence of an anchor with its tagged form.
func (r *PageRewriter) tag(p *page, content string, anchor markup.Pattern, tagged string) string {
	span, ok := markup.Locate(content, anchor)
	if !ok {
		p.note("%s: %v", anchor.Name(), domain.ErrAnchorNotFound)
		return content
	}
	out, err := markup.Inject(content, span, tagged, markup.ReplaceSpan)
	if err != nil {
		p.note("%s: %v", anchor.Name(), err)
		return content
	}
	return out
}

// linkScripts adds the progress and credits activation script references,
// each on its own line directly before </body>. The last one added ends
// up closest to the closing tag.
func (r *PageRewriter) linkScripts(_ context.Context, p *page) error {
	content := p.doc.Content
	pending := false

	for _, name := range []string{"progress.js", "credits.js"} {
		src := r.scriptPath(name)
		if strings.Contains(content, src) {
			continue
		}
		pending = true
		var err error
		ref := fmt.Sprintf(scriptRef, src)
		if content, err = markup.InjectAt(content, bodyClose, ref, markup.Before); err != nil {
			return err
		}
	}

	if !pending {
		return domain.ErrAlreadyApplied
	}
	p.doc.Content = content
	return nil
}

// cleanupDrift collapses stray content left between the mount container
// and the closing </main> into the canonical closing sequence.
func (r *PageRewriter) cleanupDrift(_ context.Context, p *page) error {
	span, drift := findDrift(p.doc.Content)
	if !drift {
		return domain.ErrAlreadyApplied
	}
	out, err := markup.Inject(p.doc.Content, span, canonicalClose, markup.ReplaceSpan)
	if err != nil {
		return err
	}
	logger.Info("%s: collapsed %d bytes of layout drift", p.doc.Name, span.Len()-len(canonicalClose))
	p.doc.Content = out
	return nil
}

// findDrift returns the span between the mount container's close and the
// enclosing </main>, and whether it holds anything other than the single
// closing </div> of the table panel. Whitespace alone is never drift.
func findDrift(content string) (markup.Span, bool) {
	mount, ok := markup.Locate(content, mountContainer)
	if !ok {
		return markup.Span{}, false
	}
	full, err := markup.ClosingPair(content, mount.Start)
	if err != nil {
		return markup.Span{}, false
	}
	closeMain, ok := markup.LocateFrom(content, sectionClose, full.End)
	if !ok {
		return markup.Span{}, false
	}

	gap := markup.Span{Start: full.End, End: closeMain.Start}
	if strings.Join(strings.Fields(gap.Text(content)), "") == "</div>" {
		return gap, false
	}
	return gap, true
}

// staggerAnimations adds entrance animation classes to the page sections.
func (r *PageRewriter) staggerAnimations(_ context.Context, p *page) error {
	content := p.doc.Content
	for _, rep := range animationStagger {
		if strings.Contains(content, rep.to) {
			continue
		}
		content, _ = markup.ReplaceEach(content, markup.Literal("section", rep.from),
			func(int, string) string { return rep.to })
	}
	if content == p.doc.Content {
		return domain.ErrAlreadyApplied
	}
	p.doc.Content = content
	return nil
}

func (r *PageRewriter) scriptPath(name string) string {
	return r.assetsPrefix + name
}

// selectSteps turns a step list into a set; empty means the default pipeline.
// Execution order is always the state machine's, never the list's.
func selectSteps(steps []domain.Transition) map[domain.Transition]bool {
	if len(steps) == 0 {
		steps = domain.PipelineTransitions()
	}
	set := make(map[domain.Transition]bool, len(steps))
	for _, s := range steps {
		set[s] = true
	}
	return set
}

// orderedSteps returns the selected transitions in execution order.
func orderedSteps(steps []domain.Transition) []domain.Transition {
	set := selectSteps(steps)
	order := domain.AllTransitions()
	result := make([]domain.Transition, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return indexOf(order, result[i]) < indexOf(order, result[j])
	})
	return result
}

func indexOf(list []domain.Transition, t domain.Transition) int {
	for i, v := range list {
		if v == t {
			return i
		}
	}
	return len(list)
}
