package domain

import (
	"fmt"
	"strings"
)

// PageState is the observed progress of a document through the pipeline.
// State is never stored separately; it is read back from markers in the document.
type PageState int

const (
	// StateUnpatched means the rows are still inline.
	StateUnpatched PageState = iota

	// StateRowsExternalized means the rows were replaced by the mount container.
	StateRowsExternalized

	// StateWidgetsInjected means the progress and credits widgets are tagged.
	StateWidgetsInjected

	// StateScriptsLinked means both activation scripts are referenced.
	StateScriptsLinked

	// StateDone means the layout has no leftover drift.
	StateDone
)

// String returns the state name.
func (s PageState) String() string {
	switch s {
	case StateUnpatched:
		return "unpatched"
	case StateRowsExternalized:
		return "rows-externalized"
	case StateWidgetsInjected:
		return "widgets-injected"
	case StateScriptsLinked:
		return "scripts-linked"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transition names one step of the page pipeline.
type Transition string

const (
	// TransitionRows externalises the inline row block into a data artifact.
	TransitionRows Transition = "rows"

	// TransitionWidgets tags the progress widget and injects the credits widget.
	TransitionWidgets Transition = "widgets"

	// TransitionScripts links the progress and credits activation scripts.
	TransitionScripts Transition = "scripts"

	// TransitionCleanup collapses drift after the mount container.
	TransitionCleanup Transition = "cleanup"

	// TransitionAnimations applies the staggered entrance classes (opt-in).
	TransitionAnimations Transition = "animations"
)

// PipelineTransitions returns the default transitions in state-machine order.
func PipelineTransitions() []Transition {
	return []Transition{
		TransitionRows,
		TransitionWidgets,
		TransitionScripts,
		TransitionCleanup,
	}
}

// AllTransitions returns every known transition in execution order.
func AllTransitions() []Transition {
	return append(PipelineTransitions(), TransitionAnimations)
}

// ParseTransitions parses transition names, accepting comma separated lists.
func ParseTransitions(names []string) ([]Transition, error) {
	var result []Transition
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(strings.ToLower(name))
			if name == "" {
				continue
			}
			t := Transition(name)
			if !t.Valid() {
				return nil, fmt.Errorf("%w: unknown step %q", ErrInvalidInput, name)
			}
			result = append(result, t)
		}
	}
	return result, nil
}

// Valid reports whether t is a known transition.
func (t Transition) Valid() bool {
	for _, known := range AllTransitions() {
		if t == known {
			return true
		}
	}
	return false
}
