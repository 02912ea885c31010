// tools_init.go implements the MCP tool that creates a store. It is the
// one tool that works before initialisation.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/host"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initStore handles textfinder_init.
func (h *handlers) initStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.host != nil {
		return mcp.NewToolResultError("store already initialised"), nil
	}

	err := document.Init(false, h.opts.DB, h.opts.Dir)

	log.Event("mcp:init", "init").Author(h.author(req)).Detail("db", h.opts.DB).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hst, err := host.Open(ctx, host.Options{DB: h.opts.DB, Dir: h.opts.Dir, Author: h.opts.Author})
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open store: " + err.Error()), nil
	}
	h.host = hst

	slog.Info("store initialised", "dir", hst.Service.Dir())
	return mcp.NewToolResultText("store initialised"), nil
}
