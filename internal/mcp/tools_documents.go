// tools_documents.go implements MCP tools for buffer storage: list, read,
// write, delete, restore, revert and history. They delegate to the same
// internal packages as the CLI commands, writing text output to
// io.Discard and returning the structured result.
//
// Every write requires an author so buffer history shows which client
// made each change.

package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/internal/history"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/ls"
	"github.com/jpl-au/textfinder/internal/revert"
	"github.com/jpl-au/textfinder/internal/rm"
	"github.com/jpl-au/textfinder/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// listBuffers handles textfinder_list.
func (h *handlers) listBuffers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	sortBy, err := ls.ParseSort(getString(req, "sort", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := ls.Options{
		Prefix:      getString(req, "prefix", ""),
		Pattern:     getString(req, "glob", ""),
		IncludeAll:  getBool(req, "include_deleted", false),
		DeletedOnly: getBool(req, "deleted_only", false),
		Sort:        sortBy,
		Reverse:     getBool(req, "reverse", false),
	}

	result, err := ls.Run(ctx, io.Discard, h.host.Service, opts)

	log.Event("mcp:list", "list").Author(h.author(req)).Path(opts.Prefix).
		Detail("glob", opts.Pattern).Detail("count", len(result.Documents)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result.ToJSON())
}

// readBuffers handles textfinder_read. One path returns an object,
// several return an array.
func (h *handlers) readBuffers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	paths := getStrings(req, "paths")
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths is required"), nil
	}
	version := getInt(req, "version", 0)

	var (
		docs []store.DocJSON
		err  error
	)
	l := log.Event("mcp:read", "read").Author(h.author(req)).Version(version)
	if len(paths) == 1 {
		l.Path(paths[0])
	} else {
		l.Detail("paths", paths)
	}
	defer func() { l.Detail("count", len(docs)).Write(err) }()

	for _, p := range paths {
		var doc *store.Document
		if version > 0 {
			doc, err = h.host.Service.Version(ctx, p, version)
		} else {
			doc, err = h.host.Service.Resolve(ctx, p)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", p, err)), nil
		}
		docs = append(docs, doc.ToJSON(true))
	}

	if len(docs) == 1 {
		return jsonResult(docs[0])
	}
	return jsonResult(docs)
}

// writeBuffer handles textfinder_write.
func (h *handlers) writeBuffer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil || author == "" {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}
	message := getString(req, "message", "")

	version, err := h.host.Service.Write(ctx, path, content, author, message)

	log.Event("mcp:write", "write").Author(author).Path(path).ResultVersion(version).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": path, "version": version})
}

// deleteBuffer handles textfinder_delete.
func (h *handlers) deleteBuffer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	recursive := getBool(req, "recursive", false)

	result, err := rm.Run(ctx, io.Discard, h.host.Service, path, rm.Options{Recursive: recursive})

	log.Event("mcp:delete", "delete").Author(h.author(req)).Path(path).
		Detail("recursive", recursive).Detail("count", len(result.Deleted)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// restoreBuffer handles textfinder_restore.
func (h *handlers) restoreBuffer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	result, err := rm.Restore(ctx, io.Discard, h.host.Service, path)

	log.Event("mcp:restore", "restore").Author(h.author(req)).Path(path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// revertBuffer handles textfinder_revert.
func (h *handlers) revertBuffer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	target, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError("target is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil || author == "" {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}
	version := getInt(req, "version", 0)

	result, err := revert.Run(ctx, io.Discard, h.host.Service, target, version, revert.Options{
		Author:  author,
		Message: getString(req, "message", ""),
	})

	log.Event("mcp:revert", "revert").Author(author).Path(target).
		Version(version).ResultVersion(result.NewVersion).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// historyBuffer handles textfinder_history.
func (h *handlers) historyBuffer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	limit := getInt(req, "limit", 0)

	result, err := history.Run(ctx, io.Discard, h.host.Service, path, history.Options{Limit: limit})

	log.Event("mcp:history", "history").Author(h.author(req)).Path(path).
		Detail("count", len(result.Versions)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]store.DocJSON, len(result.Versions))
	for i := range result.Versions {
		out[i] = result.Versions[i].ToJSON(false)
	}
	return jsonResult(out)
}
