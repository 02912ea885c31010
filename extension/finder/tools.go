// tools.go exposes the overlay as a single MCP tool selecting the
// operation by action.

package finder

import (
	"context"

	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/finder"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

var actions = []string{
	finder.ActionShow, finder.ActionSearch, finder.ActionNext, finder.ActionPrev,
	finder.ActionReplace, finder.ActionReplaceAll, finder.ActionRegex, finder.ActionCase,
	finder.ActionHide, "key", "status",
}

func findTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("textfinder_find",
			mcp.WithDescription("Drive the incremental search overlay over the active editor. State persists between calls: show, then search/next/prev/replace, then hide."),
			mcp.WithString("action", mcp.Required(), mcp.Enum(actions...), mcp.Description("Overlay operation")),
			mcp.WithString("arg", mcp.Description("Query for show/search, replacement for replace/replace-all (stored text when omitted), chord for key")),
		),
		Handler: find,
	}
}

func find(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := req.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError("action is required"), nil //nolint:nilerr
	}
	var arg *string
	if v, err := req.RequireString("arg"); err == nil {
		arg = &v
	}

	st, err := dispatch(ctx, extCtx.Finder(), action, arg)

	log.Event("mcp:find", action).
		Author("mcp").
		Path(st.Path).
		Detail("query", st.Query).
		Detail("total", st.Total).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(st)
}
