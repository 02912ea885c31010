// Package document provides the document extension for buffer storage.
// Registers commands: write, cat, ls, history, diff, rm, restore, revert,
// import, export.
//
// These commands mirror Unix file utilities so buffers can be managed
// without an editor attached.

package document

import (
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the document extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "document".
func (e *Extension) Name() string { return "document" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the buffer management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newWriteCmd(),
		e.newCatCmd(),
		e.newLsCmd(),
		e.newHistoryCmd(),
		e.newDiffCmd(),
		e.newRmCmd(),
		e.newRestoreCmd(),
		e.newRevertCmd(),
		e.newImportCmd(),
		e.newExportCmd(),
	}
}

// MCPTools returns nil; document tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
