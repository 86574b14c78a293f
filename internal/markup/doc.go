// Package markup locates anchors in HTML documents and splices fragments
// into them without disturbing any other byte of the document.
//
// Structural anchors are found on a token stream produced by the
// golang.org/x/net/html tokenizer, so tags inside scripts, styles and
// comments never match and attribute whitespace does not matter. Every
// token carries its byte span in the original text; rewriting is always
// done on the original string, never on a re-rendered tree.
package markup
