package domain

import (
	"fmt"
	"time"
)

// OutcomeStatus classifies what happened to one document in a run.
type OutcomeStatus string

const (
	// StatusPatched means at least one transition changed the document.
	StatusPatched OutcomeStatus = "patched"

	// StatusAlreadyApplied means every requested transition was already applied.
	StatusAlreadyApplied OutcomeStatus = "already-applied"

	// StatusAnchorMissing means a required anchor was absent.
	StatusAnchorMissing OutcomeStatus = "anchor-missing"

	// StatusExcluded means the document is on the exclusion list.
	StatusExcluded OutcomeStatus = "excluded"

	// StatusFailed means the document could not be processed.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome is the report entry for a single document.
type Outcome struct {
	// File is the document file name.
	File string

	// Status is the overall result.
	Status OutcomeStatus

	// Applied lists transitions that changed the document.
	Applied []Transition

	// Notes holds non-fatal per-step messages (e.g. optional anchors missing).
	Notes []string

	// State is the observed state after the run.
	State PageState

	// Err is the error that stopped processing, if any.
	Err error
}

// Skipped reports whether the document was left untouched.
func (o Outcome) Skipped() bool {
	return o.Status != StatusPatched
}

// Reason returns a human-readable explanation for a skipped document.
func (o Outcome) Reason() string {
	switch o.Status {
	case StatusAlreadyApplied:
		return "already applied"
	case StatusExcluded:
		return "excluded"
	case StatusAnchorMissing, StatusFailed:
		if o.Err != nil {
			return o.Err.Error()
		}
		return string(o.Status)
	default:
		return ""
	}
}

// Report collects the outcomes of one batch run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration

	// DryRun indicates nothing was written.
	DryRun bool

	// Outcomes holds one entry per document, in corpus order.
	Outcomes []Outcome
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Summary returns the final tally line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d files: %d patched, %d already applied, %d anchor missing, %d excluded, %d failed",
		len(r.Outcomes),
		r.Count(StatusPatched),
		r.Count(StatusAlreadyApplied),
		r.Count(StatusAnchorMissing),
		r.Count(StatusExcluded),
		r.Count(StatusFailed),
	)
}

// PageStatus is the observed state of one document, used by status listings.
type PageStatus struct {
	File  string
	State PageState
}
