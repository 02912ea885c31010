// pattern.go compiles regular expressions with JavaScript-style flags.
//
// Patterns use regexp2 in ECMAScript mode so sources and replacement
// templates behave as users of the editor expect: \d is ASCII-only, $1 and
// $& reference groups, and a "$" that introduces nothing is literal.

package replace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	// ErrUnsupportedFlag is returned for flag characters the engine cannot honour.
	ErrUnsupportedFlag = errors.New("unsupported regexp flag")
	// ErrDuplicateFlag is returned when a flag character appears twice.
	ErrDuplicateFlag = errors.New("duplicate regexp flag")
)

// Pattern is a compiled regular expression plus its match mode.
type Pattern struct {
	re     *regexp2.Regexp
	global bool
	named  bool
	// verbatim patterns insert replacement text without template expansion.
	verbatim bool
	source   string
	flags    string
}

// Compile builds a Pattern from a source and a flag string.
//
// Recognised flags: g (replace every match), i (ignore case), m (^ and $
// match at line breaks), s (dot matches newline), u (unicode), y (sticky:
// matches must start at offset 0 and follow each other without gaps), d
// (match indices, accepted and ignored). Unicode-sets (v) has no equivalent
// and is rejected, as is any repeated or unknown flag.
func Compile(source, flags string) (*Pattern, error) {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	global, sticky := false, false
	seen := make(map[rune]bool, len(flags))
	for _, f := range flags {
		if seen[f] {
			return nil, compileError(source, flags, fmt.Errorf("%w: %q", ErrDuplicateFlag, f))
		}
		seen[f] = true

		switch f {
		case 'g':
			global = true
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u':
			opts |= regexp2.Unicode
		case 'y':
			sticky = true
		case 'd':
		default:
			return nil, compileError(source, flags, fmt.Errorf("%w: %q", ErrUnsupportedFlag, f))
		}
	}

	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, compileError(source, flags, err)
	}
	if sticky {
		// \G anchors each attempt where the previous match ended.
		if re, err = regexp2.Compile(`\G(?:`+source+`)`, opts); err != nil {
			return nil, compileError(source, flags, err)
		}
	}
	return newPattern(re, global, source, flags), nil
}

// Literal builds a Pattern matching text exactly. Every occurrence is
// matched (the pattern is global) and replacement text is inserted as is.
func Literal(text string, ignoreCase bool) *Pattern {
	opts := regexp2.None
	flags := "g"
	if ignoreCase {
		opts |= regexp2.IgnoreCase
		flags += "i"
	}
	// An escaped literal always compiles.
	re := regexp2.MustCompile(regexp2.Escape(text), opts)
	p := newPattern(re, true, text, flags)
	p.verbatim = true
	return p
}

func newPattern(re *regexp2.Regexp, global bool, source, flags string) *Pattern {
	p := &Pattern{re: re, global: global, source: source, flags: flags}
	for _, name := range re.GetGroupNames() {
		if !isNumber(name) {
			p.named = true
			break
		}
	}
	return p
}

// Global reports whether every match is replaced, not just the first.
func (p *Pattern) Global() bool { return p.global }

// String returns the pattern in /source/flags form.
func (p *Pattern) String() string { return "/" + p.source + "/" + p.flags }

// Replace substitutes matches in text using template. Only the first
// match is replaced unless the pattern is global.
func (p *Pattern) Replace(text, template string) (string, error) {
	count := 1
	if p.global {
		count = -1
	}
	return p.re.Replace(text, p.template(template), -1, count)
}

// ReplaceAt substitutes the first match starting at or after the rune
// offset at.
func (p *Pattern) ReplaceAt(text, template string, at int) (string, error) {
	return p.re.Replace(text, p.template(template), at, 1)
}

// Match is a match location in runes.
type Match struct {
	Index  int    `json:"index"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// FindAll returns every non-empty match in text, in order.
func (p *Pattern) FindAll(text string) ([]Match, error) {
	var out []Match
	m, err := p.re.FindStringMatch(text)
	for m != nil && err == nil {
		if m.Length > 0 {
			out = append(out, Match{Index: m.Index, Length: m.Length, Text: m.String()})
		}
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", p, err)
	}
	return out, nil
}

// template rewrites a JavaScript replacement template into regexp2 syntax.
// $<name> becomes ${name}; "$" before anything that is not a reference is
// doubled so it stays literal; $0 and $00 are literal, as in JavaScript.
func (p *Pattern) template(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	if p.verbatim {
		return strings.ReplaceAll(s, "$", "$$")
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(s) {
			b.WriteString("$$")
			continue
		}

		next := s[i+1]
		switch {
		case next == '$':
			b.WriteString("$$")
			i++
		case next == '&' || next == '`' || next == '\'':
			b.WriteByte('$')
		case next == '0' && (i+2 == len(s) || !isDigit(s[i+2]) || s[i+2] == '0'):
			b.WriteString("$$")
		case isDigit(next):
			b.WriteByte('$')
		case next == '<' && p.named:
			end := strings.IndexByte(s[i+2:], '>')
			if end < 0 {
				b.WriteString("$$")
				continue
			}
			name := s[i+2 : i+2+end]
			if p.re.GroupNumberFromName(name) >= 0 {
				b.WriteString("${" + name + "}")
			}
			i += 2 + end
		default:
			b.WriteString("$$")
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
