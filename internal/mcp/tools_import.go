// tools_import.go implements the MCP tool for importing files as
// buffers. Directory walks go through os.Root in the importer, so
// symlinks cannot escape the source.

package mcp

import (
	"context"
	"io"

	"github.com/jpl-au/textfinder/internal/importer"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// importFiles handles textfinder_import.
func (h *handlers) importFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil || author == "" {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	opts := importer.Options{
		Prefix:  getString(req, "prefix", ""),
		Pattern: getString(req, "glob", ""),
		Flat:    getBool(req, "flat", false),
		Hidden:  getBool(req, "hidden", false),
		DryRun:  getBool(req, "dry_run", false),
		Author:  author,
	}

	result, err := importer.Run(ctx, io.Discard, h.host.Service, path, opts)

	log.Event("mcp:import", "import").Author(author).Detail("source", path).
		Detail("count", result.Imported).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"imported": result.Imported,
		"paths":    result.Paths,
		"skipped":  result.Skipped,
		"dry_run":  opts.DryRun,
	})
}
