// Package extension provides the plugin architecture for textfinder.
// Extensions group related commands and MCP tools and register at init
// time, so a feature is added without touching the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for textfinder extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared services before any of
// their commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a store. Commands returned by NoStoreCommands() will
// not trigger store initialisation in PersistentPreRunE.
type Storeless interface {
	NoStoreCommands() []string
}
