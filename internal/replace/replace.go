// Package replace implements the find/replace engine.
//
// Apply runs up to two substitution stages over a piece of text, in order:
//
//  1. literal: every occurrence of FindText becomes Replace, inserted as is
//  2. regex: FindRegexp (with RegexpFlags) is applied to the output of the
//     literal stage, and Replace is read as a template ($1, $<name>, $&)
//
// A stage runs only when its pattern is non-empty, so the same Replace text
// can mean different things depending on which stage consumes it. A pattern
// that fails to compile aborts the regex stage only: Apply returns the
// literal stage's output together with a *PatternCompileError.
package replace

import (
	"fmt"
	"strings"

	"github.com/jpl-au/textfinder/internal/settings"
)

// PatternCompileError reports a regex source or flag string that the engine
// rejected. The text returned alongside it is still valid.
type PatternCompileError struct {
	Source string
	Flags  string
	Err    error
}

func (e *PatternCompileError) Error() string {
	return fmt.Sprintf("invalid pattern /%s/%s: %v", e.Source, e.Flags, e.Err)
}

func (e *PatternCompileError) Unwrap() error { return e.Err }

func compileError(source, flags string, err error) *PatternCompileError {
	return &PatternCompileError{Source: source, Flags: flags, Err: err}
}

// Stage is one substitution pass.
type Stage struct {
	Name  string
	Apply func(string) (string, error)
}

// Stage names.
const (
	StageLiteral = "literal"
	StageRegex   = "regex"
)

// Stages returns the passes configured by s, in execution order.
func Stages(s settings.Settings) []Stage {
	var stages []Stage
	if s.FindText != "" {
		find, repl := s.FindText, s.Replace
		stages = append(stages, Stage{
			Name: StageLiteral,
			Apply: func(text string) (string, error) {
				return strings.ReplaceAll(text, find, repl), nil
			},
		})
	}
	if s.FindRegexp != "" {
		source, flags, repl := s.FindRegexp, s.RegexpFlags, s.Replace
		stages = append(stages, Stage{
			Name: StageRegex,
			Apply: func(text string) (string, error) {
				p, err := Compile(source, flags)
				if err != nil {
					return text, err
				}
				out, err := p.Replace(text, repl)
				if err != nil {
					return text, fmt.Errorf("%s: %w", p, err)
				}
				return out, nil
			},
		})
	}
	return stages
}

// Apply runs the configured stages over text. On error the result is the
// output of the last stage that succeeded.
func Apply(text string, s settings.Settings) (string, error) {
	for _, st := range Stages(s) {
		out, err := st.Apply(text)
		if err != nil {
			return text, err
		}
		text = out
	}
	return text, nil
}
