// Package replace provides the replace extension: the
// find-and-replace-in-selection command and the settings panel it reads.
// Both are also exposed as MCP tools.
package replace

import (
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/settings"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the replace extension.
type Extension struct {
	ws       *workspace.Workspace
	settings *settings.Manager
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "replace".
func (e *Extension) Name() string { return "replace" }

// Init keeps the workspace and the settings manager.
func (e *Extension) Init(ctx extension.Context) error {
	e.ws = ctx.Workspace()
	e.settings = ctx.Settings()
	return nil
}

// Commands returns the replace command and the settings panel.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newFindReplaceCmd(),
		e.newSettingsCmd(),
	}
}

// MCPTools returns the replace and settings tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		findReplaceTool(),
		settingsGetTool(),
		settingsSetTool(),
	}
}
