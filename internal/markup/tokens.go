package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Span is a half-open byte range [Start, End) within a document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the spanned text of doc.
func (s Span) Text(doc string) string {
	return doc[s.Start:s.End]
}

// token is one lexical HTML token with its position in the source text.
type token struct {
	typ   html.TokenType
	tag   string
	attrs []html.Attribute
	span  Span
}

func (t token) isTag() bool {
	return t.typ == html.StartTagToken || t.typ == html.EndTagToken || t.typ == html.SelfClosingTagToken
}

// attr returns the value of the named attribute.
func (t token) attr(key string) (string, bool) {
	for _, a := range t.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// scan tokenizes doc starting at byte offset from and calls fn for each
// token until fn returns false or the input is exhausted.
// from must sit on a token boundary (typically 0 or the start of a tag).
func scan(doc string, from int, fn func(token) bool) {
	z := html.NewTokenizer(strings.NewReader(doc[from:]))
	offset := from
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		// Raw must be measured before Token, which may rewrite the buffer.
		n := len(z.Raw())
		tok := token{typ: tt, span: Span{Start: offset, End: offset + n}}
		if tok.isTag() {
			t := z.Token()
			tok.tag = t.Data
			tok.attrs = t.Attr
		}
		offset += n
		if !fn(tok) {
			return
		}
	}
}

// normalizeSpace collapses runs of whitespace so attribute values compare
// equal across formatting drift.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// voidElements never have a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}
