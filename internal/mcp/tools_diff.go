// tools_diff.go implements the MCP tool for comparing buffer versions.

package mcp

import (
	"context"

	"github.com/jpl-au/textfinder/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// diffBuffer handles textfinder_diff.
func (h *handlers) diffBuffer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	v1, v2 := getInt(req, "version1", 0), getInt(req, "version2", 0)

	r, err := h.host.Service.Diff(ctx, path, v1, v2)

	log.Event("mcp:diff", "diff").Author(h.author(req)).Path(path).
		Detail("version1", v1).Detail("version2", v2).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"old":     r.Old,
		"new":     r.New,
		"diff":    r.Format(false),
		"changed": !r.Empty(),
	})
}
