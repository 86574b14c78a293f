package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

// Mode selects where a fragment goes relative to an anchor span.
type Mode int

const (
	// Before inserts the fragment immediately before the span.
	Before Mode = iota

	// After inserts the fragment immediately after the span.
	After

	// ReplaceSpan replaces exactly the span.
	ReplaceSpan

	// ReplaceToClosingPair replaces the element starting at the span
	// through its matching close tag at the same nesting depth.
	ReplaceToClosingPair
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Before:
		return "before"
	case After:
		return "after"
	case ReplaceSpan:
		return "replace-span"
	case ReplaceToClosingPair:
		return "replace-to-closing-pair"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Inject returns doc with fragment placed relative to span. The fragment is
// inserted exactly once and is not re-indented; every byte outside the
// affected range is preserved. Callers must check their injection marker
// first, as Inject does not detect a previous insertion.
func Inject(doc string, span Span, fragment string, mode Mode) (string, error) {
	if span.Start < 0 || span.End > len(doc) || span.Start > span.End {
		return "", fmt.Errorf("%w: span [%d,%d) outside document of %d bytes",
			domain.ErrInvalidInput, span.Start, span.End, len(doc))
	}

	switch mode {
	case Before:
		return splice(doc, Span{Start: span.Start, End: span.Start}, fragment), nil
	case After:
		return splice(doc, Span{Start: span.End, End: span.End}, fragment), nil
	case ReplaceSpan:
		return splice(doc, span, fragment), nil
	case ReplaceToClosingPair:
		full, err := ClosingPair(doc, span.Start)
		if err != nil {
			return "", err
		}
		return splice(doc, full, fragment), nil
	default:
		return "", fmt.Errorf("%w: unknown mode %d", domain.ErrInvalidInput, int(mode))
	}
}

// InjectAt locates the first occurrence of p and injects fragment there.
func InjectAt(doc string, p Pattern, fragment string, mode Mode) (string, error) {
	span, ok := Locate(doc, p)
	if !ok {
		return "", fmt.Errorf("%s: %w", p.Name(), domain.ErrAnchorNotFound)
	}
	return Inject(doc, span, fragment, mode)
}

// ClosingPair returns the span from the start tag at offset start through
// its matching end tag. Nested elements of the same name are counted, so
// an inner close never ends the range early. Void and self-closing
// elements span only their own tag.
func ClosingPair(doc string, start int) (Span, error) {
	if start < 0 || start >= len(doc) {
		return Span{}, fmt.Errorf("%w: offset %d outside document", domain.ErrInvalidInput, start)
	}

	var (
		tag    string
		depth  int
		result Span
		found  bool
		bad    bool
	)
	scan(doc, start, func(t token) bool {
		if tag == "" {
			if t.typ == html.SelfClosingTagToken || (t.typ == html.StartTagToken && voidElements[t.tag]) {
				result, found = Span{Start: start, End: t.span.End}, true
				return false
			}
			if t.typ != html.StartTagToken {
				bad = true
				return false
			}
			tag, depth = t.tag, 1
			return true
		}
		if t.tag != tag {
			return true
		}
		switch t.typ {
		case html.StartTagToken:
			depth++
		case html.EndTagToken:
			depth--
			if depth == 0 {
				result, found = Span{Start: start, End: t.span.End}, true
				return false
			}
		}
		return true
	})

	if bad {
		return Span{}, fmt.Errorf("%w: no start tag at offset %d", domain.ErrInvalidInput, start)
	}
	if !found {
		return Span{}, fmt.Errorf("closing </%s> for offset %d: %w", tag, start, domain.ErrAnchorNotFound)
	}
	return result, nil
}

// ReplaceEach rewrites every occurrence of p in document order. fn receives
// the occurrence's ordinal (0, 1, 2, ...) and its text and returns the
// replacement. It returns the new document and the number of occurrences.
func ReplaceEach(doc string, p Pattern, fn func(ordinal int, match string) string) (string, int) {
	spans := LocateAll(doc, p)
	if len(spans) == 0 {
		return doc, 0
	}

	var b strings.Builder
	b.Grow(len(doc))
	last := 0
	for i, s := range spans {
		b.WriteString(doc[last:s.Start])
		b.WriteString(fn(i, s.Text(doc)))
		last = s.End
	}
	b.WriteString(doc[last:])
	return b.String(), len(spans)
}

// splice replaces span in doc with fragment.
func splice(doc string, span Span, fragment string) string {
	var b strings.Builder
	b.Grow(len(doc) - span.Len() + len(fragment))
	b.WriteString(doc[:span.Start])
	b.WriteString(fragment)
	b.WriteString(doc[span.End:])
	return b.String()
}
