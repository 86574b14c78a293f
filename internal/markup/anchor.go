package markup

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

type patternKind int

const (
	kindLiteral patternKind = iota
	kindElement
	kindEndTag
	kindRegexp
)

// Attr is an expected attribute on an element pattern.
type Attr struct {
	Key string
	Val string
}

// Pattern describes an anchor to find in a document. Patterns are
// immutable; build them with Literal, Element, EndTag or Regexp.
type Pattern struct {
	name    string
	kind    patternKind
	literal string
	tag     string
	attrs   []Attr
	re      *regexp.Regexp
}

// Literal matches an exact substring.
func Literal(name, text string) Pattern {
	return Pattern{name: name, kind: kindLiteral, literal: text}
}

// Element matches a start tag with the given name whose listed attributes
// equal the given values (whitespace-normalised). Other attributes are allowed.
func Element(name, tag string, attrs ...Attr) Pattern {
	return Pattern{name: name, kind: kindElement, tag: strings.ToLower(tag), attrs: attrs}
}

// EndTag matches a closing tag outside of raw-text content.
func EndTag(name, tag string) Pattern {
	return Pattern{name: name, kind: kindEndTag, tag: strings.ToLower(tag)}
}

// Regexp matches a regular expression.
func Regexp(name string, re *regexp.Regexp) Pattern {
	return Pattern{name: name, kind: kindRegexp, re: re}
}

// Name returns the anchor's name, used in reports.
func (p Pattern) Name() string {
	return p.name
}

// String describes the pattern.
func (p Pattern) String() string {
	switch p.kind {
	case kindLiteral:
		return fmt.Sprintf("%s (literal %q)", p.name, p.literal)
	case kindElement:
		return fmt.Sprintf("%s (<%s> %v)", p.name, p.tag, p.attrs)
	case kindEndTag:
		return fmt.Sprintf("%s (</%s>)", p.name, p.tag)
	default:
		return fmt.Sprintf("%s (regexp %s)", p.name, p.re)
	}
}

// structural reports whether the pattern is matched on the token stream.
func (p Pattern) structural() bool {
	return p.kind == kindElement || p.kind == kindEndTag
}

func (p Pattern) matchToken(t token) bool {
	switch p.kind {
	case kindElement:
		if (t.typ != html.StartTagToken && t.typ != html.SelfClosingTagToken) || t.tag != p.tag {
			return false
		}
		for _, want := range p.attrs {
			got, ok := t.attr(want.Key)
			if !ok || normalizeSpace(got) != normalizeSpace(want.Val) {
				return false
			}
		}
		return true
	case kindEndTag:
		return t.typ == html.EndTagToken && t.tag == p.tag
	default:
		return false
	}
}

// Locate returns the span of the first occurrence of p in doc.
// It has no side effects; ok is false when the anchor is absent.
func Locate(doc string, p Pattern) (Span, bool) {
	return LocateFrom(doc, p, 0)
}

// LocateFrom returns the first occurrence of p at or after byte offset from.
// For structural patterns from must be a token boundary.
func LocateFrom(doc string, p Pattern, from int) (Span, bool) {
	if from < 0 || from > len(doc) {
		return Span{}, false
	}
	switch p.kind {
	case kindLiteral:
		if p.literal == "" {
			return Span{}, false
		}
		i := strings.Index(doc[from:], p.literal)
		if i < 0 {
			return Span{}, false
		}
		return Span{Start: from + i, End: from + i + len(p.literal)}, true
	case kindRegexp:
		loc := p.re.FindStringIndex(doc[from:])
		if loc == nil {
			return Span{}, false
		}
		return Span{Start: from + loc[0], End: from + loc[1]}, true
	}

	var found Span
	ok := false
	scan(doc, from, func(t token) bool {
		if p.matchToken(t) {
			found, ok = t.span, true
			return false
		}
		return true
	})
	return found, ok
}

// LocateAll returns every non-overlapping occurrence of p in document order.
// The matcher never picks among repeated occurrences; callers address them
// by their ordinal in the returned slice.
func LocateAll(doc string, p Pattern) []Span {
	var spans []Span
	if p.structural() {
		scan(doc, 0, func(t token) bool {
			if p.matchToken(t) {
				spans = append(spans, t.span)
			}
			return true
		})
		return spans
	}

	from := 0
	for from <= len(doc) {
		s, ok := LocateFrom(doc, p, from)
		if !ok {
			break
		}
		spans = append(spans, s)
		if s.End == s.Start {
			from = s.End + 1
		} else {
			from = s.End
		}
	}
	return spans
}

// Count returns how many times p occurs in doc.
func Count(doc string, p Pattern) int {
	return len(LocateAll(doc, p))
}
