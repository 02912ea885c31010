// Package finder provides the finder extension: the "find" command group
// and the textfinder_find MCP tool, both driving the persisted search
// overlay over the active editor.
package finder

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/finder"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the finder extension.
type Extension struct {
	overlay *finder.Overlay
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "finder".
func (e *Extension) Name() string { return "finder" }

// Init keeps the overlay.
func (e *Extension) Init(ctx extension.Context) error {
	e.overlay = ctx.Finder()
	return nil
}

// Commands returns the find command group.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newFindCmd()}
}

// MCPTools returns the finder tool.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{findTool()}
}

// dispatch runs one overlay action by name. arg is the query, the
// replacement text or the key chord depending on the action; replace and
// replace-all fall back to the stored replacement when arg is nil.
func dispatch(ctx context.Context, o *finder.Overlay, action string, arg *string) (finder.Status, error) {
	str := func() string {
		if arg == nil {
			return ""
		}
		return *arg
	}
	replacement := func() (string, error) {
		if arg != nil {
			return *arg, nil
		}
		st, err := o.State(ctx)
		return st.Replace, err
	}

	switch action {
	case finder.ActionShow:
		return o.Show(ctx, str())
	case finder.ActionSearch:
		return o.Search(ctx, str())
	case finder.ActionNext:
		return o.Next(ctx)
	case finder.ActionPrev:
		return o.Prev(ctx)
	case finder.ActionReplace:
		text, err := replacement()
		if err != nil {
			return finder.Status{}, err
		}
		return o.ReplaceCurrent(ctx, text)
	case finder.ActionReplaceAll:
		text, err := replacement()
		if err != nil {
			return finder.Status{}, err
		}
		return o.ReplaceAll(ctx, text)
	case finder.ActionHide:
		return o.Hide(ctx)
	case finder.ActionRegex:
		return o.ToggleRegex(ctx)
	case finder.ActionCase:
		return o.ToggleCase(ctx)
	case "key":
		return o.Key(ctx, str())
	case "status":
		return o.Status(ctx)
	}
	return finder.Status{}, fmt.Errorf("unknown finder action %q", action)
}

// printStatus writes the one-line human summary of st.
func printStatus(w io.Writer, st finder.Status) {
	switch {
	case st.Delegated:
		fmt.Fprintln(w, "Search handed to the preview view")
	case !st.Visible:
		fmt.Fprintln(w, "Finder hidden")
	case st.Error != "":
		fmt.Fprintf(w, "%q: %s\n", st.Query, st.Error)
	case st.Query == "":
		fmt.Fprintf(w, "Finder open in %s\n", st.Path)
	case st.Total == 0:
		fmt.Fprintf(w, "No matches for %q in %s%s\n", st.Query, st.Path, modes(st.State))
	default:
		fmt.Fprintf(w, "%d/%d %q at %s in %s%s\n", st.Index, st.Total, st.Query, st.Match, st.Path, modes(st.State))
	}
	if st.Replaced > 0 {
		fmt.Fprintf(w, "Replaced %d\n", st.Replaced)
	}
}

func modes(st finder.State) string {
	var s string
	if st.Regex {
		s += " [regex]"
	}
	if st.MatchCase {
		s += " [case]"
	}
	return s
}
