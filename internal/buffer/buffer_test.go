package buffer_test

import (
	"testing"

	"github.com/jpl-au/textfinder/internal/buffer"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/stretchr/testify/assert"
)

func pos(line, col int) span.Position { return span.Position{Line: line, Col: col} }

func TestNew(t *testing.T) {
	b := buffer.New("one\ntwo\n")
	assert.Equal(t, 3, b.LineCount())
	assert.Equal(t, "two", b.Line(1))
	assert.Equal(t, "", b.Line(2))
	assert.Equal(t, "", b.Line(9))
	assert.Equal(t, "one\ntwo\n", b.Content())
	assert.Equal(t, pos(0, 0), b.Cursor())
}

func TestClamp(t *testing.T) {
	b := buffer.New("ab\ncde")
	tests := []struct {
		name string
		in   span.Position
		want span.Position
	}{
		{"inside", pos(1, 2), pos(1, 2)},
		{"column past end", pos(0, 9), pos(0, 2)},
		{"negative column", pos(1, -3), pos(1, 0)},
		{"line past end", pos(7, 0), pos(1, 3)},
		{"negative line", pos(-1, 4), pos(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Clamp(tt.in))
		})
	}
}

func TestReplaceRange(t *testing.T) {
	tests := []struct {
		name    string
		content string
		r       span.Range
		text    string
		want    string
		cursor  span.Position
	}{
		{
			name:    "within a line",
			content: "hello world",
			r:       span.Range{From: pos(0, 6), To: pos(0, 11)},
			text:    "there",
			want:    "hello there",
			cursor:  pos(0, 11),
		},
		{
			name:    "whole line",
			content: "foo\nbar\nbaz",
			r:       span.Range{From: pos(2, 0), To: pos(2, 3)},
			text:    "qux",
			want:    "foo\nbar\nqux",
			cursor:  pos(2, 3),
		},
		{
			name:    "across lines shrinking",
			content: "a1\nb2\nc3",
			r:       span.Range{From: pos(0, 1), To: pos(2, 1)},
			text:    "-",
			want:    "a-3",
			cursor:  pos(0, 2),
		},
		{
			name:    "insert newlines",
			content: "ab",
			r:       span.Range{From: pos(0, 1), To: pos(0, 1)},
			text:    "x\ny\nz",
			want:    "ax\ny\nzb",
			cursor:  pos(2, 1),
		},
		{
			name:    "empty line with empty text",
			content: "a\n\nb",
			r:       span.Range{From: pos(1, 0), To: pos(1, 0)},
			text:    "",
			want:    "a\n\nb",
			cursor:  pos(1, 0),
		},
		{
			name:    "backward range",
			content: "héllo",
			r:       span.Range{From: pos(0, 5), To: pos(0, 1)},
			text:    "ey",
			want:    "hey",
			cursor:  pos(0, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.New(tt.content)
			b.ReplaceRange(tt.r, tt.text)
			assert.Equal(t, tt.want, b.Content())
			assert.Equal(t, tt.cursor, b.Cursor())
			assert.True(t, b.Selection().Empty())
		})
	}
}

func TestSelection(t *testing.T) {
	b := buffer.New("hello\nworld")
	b.Select(pos(1, 3), pos(0, 2))

	assert.Equal(t, pos(0, 2), b.Cursor())
	assert.Equal(t, pos(1, 3), b.Anchor())
	assert.Equal(t, span.Range{From: pos(0, 2), To: pos(1, 3)}, b.Selection())
	assert.Equal(t, "llo\nwor", b.SelectedText())

	b.ReplaceSelection("")
	assert.Equal(t, "held", b.Content())
}

func TestOffsets(t *testing.T) {
	b := buffer.New("ab\nçd\n")
	assert.Equal(t, 6, b.Len())

	assert.Equal(t, 0, b.Offset(pos(0, 0)))
	assert.Equal(t, 2, b.Offset(pos(0, 2)))
	assert.Equal(t, 3, b.Offset(pos(1, 0)))
	assert.Equal(t, 4, b.Offset(pos(1, 1)))
	assert.Equal(t, 6, b.Offset(pos(2, 0)))

	for off := 0; off <= b.Len(); off++ {
		assert.Equal(t, off, b.Offset(b.PositionAt(off)), "offset %d", off)
	}
	assert.Equal(t, pos(2, 0), b.PositionAt(99))
	assert.Equal(t, span.Range{From: pos(0, 1), To: pos(1, 1)}, b.RangeAt(1, 3))
}
