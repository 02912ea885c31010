// tools.go exposes the replace command and the settings panel as MCP
// tools. Handlers take their services from the extension Context the
// server passes in, so they hold nothing between calls.

package replace

import (
	"context"
	"io"

	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/findreplace"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

const mcpAuthor = "mcp"

func findReplaceTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("textfinder_find_replace",
			mcp.WithDescription("Run find-and-replace-in-selection on the active editor: the literal findText pass then the findRegexp pass, using the stored settings. Does nothing when no editor is open."),
			mcp.WithString("author", mcp.Description("Author attribution for the new version")),
			mcp.WithString("message", mcp.Description("Version message")),
			mcp.WithBoolean("dry_run", mcp.Description("Compute the change and its diff without committing")),
			mcp.WithBoolean("diff", mcp.Description("Include a diff of the change")),
		),
		Handler: findReplace,
	}
}

func findReplace(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	author := req.GetString("author", mcpAuthor)
	opts := findreplace.Options{
		Author:  author,
		Message: req.GetString("message", ""),
		DryRun:  req.GetBool("dry_run", false),
		Diff:    req.GetBool("diff", false),
	}

	result, err := findreplace.Run(ctx, io.Discard, extCtx.Workspace(), extCtx.Settings().Current(), opts)

	log.Event("mcp:find_replace", "replace").
		Author(author).
		Path(result.Path).
		ResultVersion(result.Version).
		Detail("skipped", result.Skipped).
		Detail("notice", result.Notice).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(result)
}

func settingsGetTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("textfinder_settings_get",
			mcp.WithDescription("Get a find and replace setting, or all of them"),
			mcp.WithString("key", mcp.Description("Setting key (findText, findRegexp, regexpFlags, replace, or a toggle); empty for all")),
		),
		Handler: settingsGet,
	}
}

func settingsGet(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := extCtx.Settings().Current()
	key := req.GetString("key", "")
	if key == "" {
		log.Event("mcp:settings_get", "list").Author(mcpAuthor).Write(nil)
		return extension.JSONResult(s)
	}

	v, err := s.Get(key)
	log.Event("mcp:settings_get", "get").Author(mcpAuthor).Detail("key", key).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(map[string]string{key: v})
}

func settingsSetTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("textfinder_settings_set",
			mcp.WithDescription("Set a find and replace setting. Saved immediately."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Setting key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("New value; toggles take true or false")),
		),
		Handler: settingsSet,
	}
}

func settingsSet(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	mgr := extCtx.Settings()
	err = mgr.Set(key, value)
	log.Event("mcp:settings_set", "set").Author(mcpAuthor).Detail("key", key).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := map[string]string{key: value}
	if err := mgr.Flush(ctx); err != nil {
		log.Event("mcp:settings_set", "flush").Author(mcpAuthor).Write(err)
		out["warning"] = "not saved yet: " + err.Error()
	}
	return extension.JSONResult(out)
}
