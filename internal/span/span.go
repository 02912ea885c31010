// Package span resolves the text a command operates on.
//
// A command works on the editor's explicit selection when there is one.
// Otherwise it works on the whole line under the cursor, and the editor's
// selection is moved onto that line so the user sees what will change.
package span

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a 0-indexed line and column. Columns count runes.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// String formats the position 1-indexed as "line:col", the CLI form.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

// Range is a half-open span of positions.
type Range struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Normalise returns r with From <= To.
func (r Range) Normalise() Range {
	if r.To.Before(r.From) {
		return Range{From: r.To, To: r.From}
	}
	return r
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.From == r.To
}

// String formats the range 1-indexed as "l:c-l:c".
func (r Range) String() string {
	return r.From.String() + "-" + r.To.String()
}

// Span is a range together with the text it contained when resolved.
type Span struct {
	Range
	Text string `json:"text"`
}

// Editor is the capability a host grants over its focused document.
// Selection returns the range normalised; the head may sit at either end.
type Editor interface {
	Cursor() Position
	Selection() Range
	SetSelection(r Range)
	Line(n int) string
	LineCount() int
	ReplaceRange(r Range, text string)
}

// Resolve returns the span a command should operate on. A non-empty
// selection is returned verbatim and the cursor is ignored. Otherwise the
// cursor line becomes the span and the editor's selection is set to it.
func Resolve(e Editor) Span {
	sel := e.Selection().Normalise()
	if !sel.Empty() {
		return Span{Range: sel, Text: Text(e, sel)}
	}

	line := e.Cursor().Line
	content := e.Line(line)
	r := Range{
		From: Position{Line: line, Col: 0},
		To:   Position{Line: line, Col: utf8.RuneCountInString(content)},
	}
	e.SetSelection(r)
	return Span{Range: r, Text: content}
}

// Text extracts the text covered by r. Lines are joined with "\n".
func Text(e Editor, r Range) string {
	r = r.Normalise()
	if r.From.Line == r.To.Line {
		return slice(e.Line(r.From.Line), r.From.Col, r.To.Col)
	}

	var b strings.Builder
	first := e.Line(r.From.Line)
	b.WriteString(slice(first, r.From.Col, utf8.RuneCountInString(first)))
	for n := r.From.Line + 1; n < r.To.Line; n++ {
		b.WriteByte('\n')
		b.WriteString(e.Line(n))
	}
	b.WriteByte('\n')
	b.WriteString(slice(e.Line(r.To.Line), 0, r.To.Col))
	return b.String()
}

// slice returns the runes of s in [from, to), clamped to the string.
func slice(s string, from, to int) string {
	runes := []rune(s)
	from = clamp(from, 0, len(runes))
	to = clamp(to, from, len(runes))
	return string(runes[from:to])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
