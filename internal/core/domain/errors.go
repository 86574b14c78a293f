package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorpusNotFound indicates the corpus directory does not exist.
	// It is the only error that aborts a whole run.
	ErrCorpusNotFound = errors.New("corpus not found")

	// ErrAnchorNotFound indicates an expected anchor is absent from a document.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrAlreadyApplied indicates a transition's marker is already present.
	// It is not a failure; the transition is a deliberate no-op.
	ErrAlreadyApplied = errors.New("already applied")

	// ErrAmbiguousAnchor indicates a pattern matched an unexpected multiplicity.
	ErrAmbiguousAnchor = errors.New("ambiguous anchor")

	// ErrInvalidDifficulty indicates a difficulty outside {Easy, Medium, Hard}.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidRow indicates a row block that cannot be turned into a record.
	ErrInvalidRow = errors.New("invalid row")

	// ErrOutOfOrder indicates a transition requested before its predecessor.
	ErrOutOfOrder = errors.New("transition out of order")
)

// TransitionError reports a failure of one transition on one document.
type TransitionError struct {
	File       string
	Transition Transition
	Err        error
}

// Error implements error.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.File, e.Transition, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransitionError) Unwrap() error {
	return e.Err
}
