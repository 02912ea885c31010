package workspace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/textfinder/internal/span"
)

// ErrInvalidPosition is returned for malformed L:C or L:C-L:C input.
var ErrInvalidPosition = errors.New("invalid position")

// ParsePosition parses a 1-indexed "line:col" into a 0-indexed Position.
// A bare "line" means column 1.
func ParsePosition(s string) (span.Position, error) {
	line, col, hasCol := strings.Cut(strings.TrimSpace(s), ":")

	l, err := strconv.Atoi(line)
	if err != nil || l < 1 {
		return span.Position{}, fmt.Errorf("%w: %q (expected line:col, 1-indexed)", ErrInvalidPosition, s)
	}
	c := 1
	if hasCol {
		c, err = strconv.Atoi(col)
		if err != nil || c < 1 {
			return span.Position{}, fmt.Errorf("%w: %q (expected line:col, 1-indexed)", ErrInvalidPosition, s)
		}
	}
	return span.Position{Line: l - 1, Col: c - 1}, nil
}

// ParseRange parses a 1-indexed "l:c-l:c". The range keeps the order
// given, so "2:4-2:1" selects backwards with the head at 2:1.
func ParseRange(s string) (span.Range, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return span.Range{}, fmt.Errorf("%w: %q (expected l:c-l:c)", ErrInvalidPosition, s)
	}
	f, err := ParsePosition(from)
	if err != nil {
		return span.Range{}, err
	}
	t, err := ParsePosition(to)
	if err != nil {
		return span.Range{}, err
	}
	return span.Range{From: f, To: t}, nil
}
