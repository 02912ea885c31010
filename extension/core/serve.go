// serve.go implements the "textfinder serve" command.
//
// Serve blocks handling MCP requests over stdio, so it opens its own host
// rather than the one root.go manages per command.

package core

import (
	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Use --db to serve a specific database:
  textfinder serve --db scratch`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(c *cobra.Command, _ []string) error {
	return mcp.Serve(c.Context(), mcp.Options{DB: cmd.DB(), Dir: cmd.Dir(), Author: cmd.Author()})
}
