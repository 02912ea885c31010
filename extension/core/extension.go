// Package core provides the core extension for textfinder.
// It registers commands: init, config, serve, guide, version, vacuum.
package core

import (
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the service for vacuum.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the repository management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
		e.newVacuumCmd(),
	}
}

// MCPTools returns nil; the guide and init tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own lifecycle.
// serve opens its own host for the life of the server; version needs
// no database.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "version"}
}
