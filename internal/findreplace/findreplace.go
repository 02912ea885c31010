// Package findreplace implements the find-and-replace-in-selection command:
// resolve the span, run the replacement engine over it, write the result
// back into the editor and commit.
package findreplace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jpl-au/textfinder/internal/diff"
	"github.com/jpl-au/textfinder/internal/replace"
	"github.com/jpl-au/textfinder/internal/settings"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/workspace"
)

// Command is the command identifier.
const Command = "find-and-replace-in-selection"

// DefaultMessage is the version message when none is given.
const DefaultMessage = "find and replace in selection"

// DefaultAuthor attributes commits when the caller names no author.
const DefaultAuthor = "find-and-replace"

// Host provides the focused editor.
type Host interface {
	Active(ctx context.Context) (*workspace.Session, error)
}

// Options configures a run.
type Options struct {
	Author  string
	Message string
	DryRun  bool // compute and show the change without committing
	Diff    bool // include a diff of the buffer in the result
	Colour  bool // colour the printed diff
}

// Result describes one invocation.
type Result struct {
	Path    string     `json:"path,omitempty"`
	Range   span.Range `json:"-"`
	From    string     `json:"from,omitempty"`
	To      string     `json:"to,omitempty"`
	Before  string     `json:"before"`
	After   string     `json:"after"`
	Changed bool       `json:"changed"`
	Version int        `json:"version,omitempty"`
	DryRun  bool       `json:"dry_run,omitempty"`
	Notice  string     `json:"notice,omitempty"`
	Skipped bool       `json:"skipped,omitempty"`
	Diff    string     `json:"diff,omitempty"`
}

// Run executes the command against the focused editor using s.
//
// With no focused editor Run does nothing and returns a skipped Result
// with a nil error. A regex that fails to compile does not fail the run:
// the literal pass's output is written and the compile error is reported
// in Result.Notice.
func Run(ctx context.Context, w io.Writer, host Host, s settings.Settings, opts Options) (Result, error) {
	sess, err := host.Active(ctx)
	if errors.Is(err, workspace.ErrNoActiveEditor) {
		return Result{Skipped: true}, nil
	}
	if err != nil {
		return Result{}, err
	}

	sp := span.Resolve(sess.Buffer)
	out, err := replace.Apply(sp.Text, s)

	res := Result{
		Path:    sess.Path,
		Range:   sp.Range,
		From:    sp.From.String(),
		To:      sp.To.String(),
		Before:  sp.Text,
		After:   out,
		Changed: out != sp.Text,
		Version: sess.Version,
		DryRun:  opts.DryRun,
	}

	var pce *replace.PatternCompileError
	switch {
	case errors.As(err, &pce):
		res.Notice = pce.Error()
	case err != nil:
		return res, err
	}

	before := sess.Buffer.Content()
	sess.Buffer.ReplaceRange(sp.Range, out)

	if opts.DryRun || opts.Diff {
		label := sess.Path + " v" + strconv.Itoa(sess.Version)
		d := diff.Compute(before, sess.Buffer.Content(), label, sess.Path+" (replaced)")
		res.Diff = d.Diff
		defer fmt.Fprint(w, d.Format(opts.Colour))
	}

	if opts.DryRun {
		fmt.Fprintf(w, "Would replace %s in %s\n", sp.Range, sess.Path)
		return res, nil
	}

	msg := opts.Message
	if msg == "" {
		msg = DefaultMessage
	}
	author := opts.Author
	if author == "" {
		author = DefaultAuthor
	}
	if res.Version, err = sess.Commit(ctx, author, msg); err != nil {
		return res, err
	}

	if res.Changed {
		fmt.Fprintf(w, "Replaced %s in %s (v%d)\n", sp.Range, sess.Path, res.Version)
	} else {
		fmt.Fprintf(w, "No changes in %s %s\n", sess.Path, sp.Range)
	}
	return res, nil
}
