// Package buffer provides an in-memory text buffer with a selection.
//
// A Buffer is what the workspace hands to commands as the focused editor:
// document content split into lines, an anchor and a head. It implements
// span.Editor. Columns and offsets count runes, never bytes.
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/textfinder/internal/span"
)

// Buffer is an editable document with a selection.
// The anchor is where the selection started and the head is the cursor.
type Buffer struct {
	lines  []string
	anchor span.Position
	head   span.Position
}

var _ span.Editor = (*Buffer)(nil)

// New returns a buffer holding content with the cursor at the start.
func New(content string) *Buffer {
	return &Buffer{lines: strings.Split(content, "\n")}
}

// Content returns the full text.
func (b *Buffer) Content() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line n, or "" when n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// Cursor returns the head of the selection.
func (b *Buffer) Cursor() span.Position {
	return b.head
}

// Anchor returns the fixed end of the selection.
func (b *Buffer) Anchor() span.Position {
	return b.anchor
}

// Selection returns the selected range with From <= To.
func (b *Buffer) Selection() span.Range {
	return span.Range{From: b.anchor, To: b.head}.Normalise()
}

// SelectedText returns the text under the selection.
func (b *Buffer) SelectedText() string {
	return span.Text(b, b.Selection())
}

// SetSelection selects r, leaving the head at r.To.
func (b *Buffer) SetSelection(r span.Range) {
	b.Select(r.From, r.To)
}

// Select sets anchor and head independently, keeping the direction.
func (b *Buffer) Select(anchor, head span.Position) {
	b.anchor = b.Clamp(anchor)
	b.head = b.Clamp(head)
}

// SetCursor collapses the selection to p.
func (b *Buffer) SetCursor(p span.Position) {
	p = b.Clamp(p)
	b.anchor, b.head = p, p
}

// Clamp moves p to the nearest valid position in the buffer.
func (b *Buffer) Clamp(p span.Position) span.Position {
	if p.Line < 0 {
		return span.Position{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return span.Position{Line: last, Col: utf8.RuneCountInString(b.lines[last])}
	}
	n := utf8.RuneCountInString(b.lines[p.Line])
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col > n {
		p.Col = n
	}
	return p
}

// ReplaceRange replaces the text in r. The selection collapses to the end
// of the inserted text.
func (b *Buffer) ReplaceRange(r span.Range, text string) {
	r = r.Normalise()
	from, to := b.Clamp(r.From), b.Clamp(r.To)

	first := []rune(b.lines[from.Line])
	last := []rune(b.lines[to.Line])
	prefix := string(first[:from.Col])
	suffix := string(last[to.Col:])

	inserted := strings.Split(text, "\n")
	repl := make([]string, len(inserted))
	copy(repl, inserted)
	repl[0] = prefix + repl[0]
	end := span.Position{
		Line: from.Line + len(inserted) - 1,
		Col:  utf8.RuneCountInString(repl[len(repl)-1]),
	}
	repl[len(repl)-1] += suffix

	lines := make([]string, 0, len(b.lines)-(to.Line-from.Line)+len(repl)-1)
	lines = append(lines, b.lines[:from.Line]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[to.Line+1:]...)
	b.lines = lines

	b.SetCursor(end)
}

// ReplaceSelection replaces the selected text.
func (b *Buffer) ReplaceSelection(text string) {
	b.ReplaceRange(b.Selection(), text)
}

// Len returns the number of runes in the buffer, counting line breaks.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// Offset converts a position into a rune offset from the start.
func (b *Buffer) Offset(p span.Position) int {
	p = b.Clamp(p)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += utf8.RuneCountInString(b.lines[i]) + 1
	}
	return off + p.Col
}

// PositionAt converts a rune offset into a position, clamped to the buffer.
func (b *Buffer) PositionAt(off int) span.Position {
	if off < 0 {
		return span.Position{}
	}
	for i, l := range b.lines {
		n := utf8.RuneCountInString(l)
		if off <= n {
			return span.Position{Line: i, Col: off}
		}
		off -= n + 1
	}
	return b.Clamp(span.Position{Line: len(b.lines)})
}

// RangeAt converts a rune offset and length into a range.
func (b *Buffer) RangeAt(off, length int) span.Range {
	return span.Range{From: b.PositionAt(off), To: b.PositionAt(off + length)}
}
