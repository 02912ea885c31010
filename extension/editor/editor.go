// Package editor provides the editor extension: the commands that focus a
// buffer and move its cursor and selection. Registers commands: open,
// close, select, cursor, view, status.
package editor

import (
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/finder"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the editor extension.
type Extension struct {
	ws     *workspace.Workspace
	finder *finder.Overlay
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "editor".
func (e *Extension) Name() string { return "editor" }

// Init keeps the workspace and the overlay that close tears down.
func (e *Extension) Init(ctx extension.Context) error {
	e.ws = ctx.Workspace()
	e.finder = ctx.Finder()
	return nil
}

// Commands returns the editor commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newOpenCmd(),
		e.newCloseCmd(),
		e.newSelectCmd(),
		e.newCursorCmd(),
		e.newViewCmd(),
		e.newStatusCmd(),
	}
}

// MCPTools returns nil; editor tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// stateJSON is the CLI form of workspace.State with 1-indexed positions.
type stateJSON struct {
	Path      string `json:"path"`
	Anchor    string `json:"anchor"`
	Head      string `json:"head"`
	Selection string `json:"selection"`
	View      string `json:"view"`
	Version   int    `json:"version,omitempty"`
	Selected  string `json:"selected,omitempty"`
}

func toJSON(st workspace.State) stateJSON {
	return stateJSON{
		Path:      st.Path,
		Anchor:    st.Anchor.String(),
		Head:      st.Head.String(),
		Selection: span.Range{From: st.Anchor, To: st.Head}.String(),
		View:      string(st.View),
	}
}
