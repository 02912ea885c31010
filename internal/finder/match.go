package finder

import (
	"github.com/jpl-au/textfinder/internal/buffer"
	"github.com/jpl-au/textfinder/internal/replace"
	"github.com/jpl-au/textfinder/internal/span"
)

// pattern compiles the query. Regex queries are always global and
// multiline; the case toggle maps to the i flag.
func (st State) pattern() (*replace.Pattern, error) {
	if st.Regex {
		flags := "gm"
		if !st.MatchCase {
			flags += "i"
		}
		return replace.Compile(st.Query, flags)
	}
	return replace.Literal(st.Query, !st.MatchCase), nil
}

// hits is the result of matching the query against a buffer.
type hits struct {
	p       *replace.Pattern
	matches []replace.Match
	ranges  []span.Range
}

func (h hits) len() int { return len(h.ranges) }

// find matches st's query in b. An empty query matches nothing.
// Zero-length matches are skipped.
func find(b *buffer.Buffer, st State) (hits, error) {
	if st.Query == "" {
		return hits{}, nil
	}
	p, err := st.pattern()
	if err != nil {
		return hits{}, err
	}
	ms, err := p.FindAll(b.Content())
	if err != nil {
		return hits{}, err
	}
	h := hits{p: p, matches: ms, ranges: make([]span.Range, len(ms))}
	for i, m := range ms {
		h.ranges[i] = b.RangeAt(m.Index, m.Length)
	}
	return h, nil
}

// after returns the index of the first match starting at or after off,
// wrapping to 0. Returns -1 when there are no matches.
func (h hits) after(b *buffer.Buffer, p span.Position) int {
	if h.len() == 0 {
		return -1
	}
	off := b.Offset(p)
	for i, m := range h.matches {
		if m.Index >= off {
			return i
		}
	}
	return 0
}

// before returns the index of the last match starting before p, wrapping
// to the last match.
func (h hits) before(b *buffer.Buffer, p span.Position) int {
	if h.len() == 0 {
		return -1
	}
	off := b.Offset(p)
	for i := h.len() - 1; i >= 0; i-- {
		if h.matches[i].Index < off {
			return i
		}
	}
	return h.len() - 1
}

// expand returns the replacement text for match i in content, with
// back-references resolved.
func (h hits) expand(content, template string, i int) (string, error) {
	m := h.matches[i]
	out, err := h.p.ReplaceAt(content, template, m.Index)
	if err != nil {
		return "", err
	}
	runes := []rune(content)
	prefix := len(string(runes[:m.Index]))
	suffix := len(string(runes[m.Index+m.Length:]))
	return out[prefix : len(out)-suffix], nil
}
