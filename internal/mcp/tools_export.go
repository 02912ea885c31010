// tools_export.go implements the MCP tool for writing buffers to disk.

package mcp

import (
	"context"
	"io"

	"github.com/jpl-au/textfinder/internal/exporter"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// exportFiles handles textfinder_export.
func (h *handlers) exportFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	dest, err := req.RequireString("dest")
	if err != nil {
		return mcp.NewToolResultError("dest is required"), nil //nolint:nilerr
	}

	opts := exporter.Options{
		Version: getInt(req, "version", 0),
		Force:   getBool(req, "force", false),
	}

	result, err := exporter.Run(ctx, io.Discard, h.host.Service, path, dest, opts)

	log.Event("mcp:export", "export").Author(h.author(req)).Path(path).
		Detail("dest", dest).Detail("count", result.Exported).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}
