// Package mcp implements the Model Context Protocol server, exposing the
// buffer store, the active editor and the find/replace engine to LLM
// clients over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/host"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the store has not been
// initialised. The client should call textfinder_init first.
const ErrNotInitialised = "store not initialised - call textfinder_init first"

// Options selects the store the server runs against.
type Options struct {
	DB     string
	Dir    string
	Author string // attribution when a tool call names none
}

// Serve runs the server over stdio until ctx is cancelled or the client
// disconnects.
//
// The server starts even if no store exists so that a client can call
// textfinder_init; every other tool reports ErrNotInitialised until then.
// On exit the finder overlay is torn down and pending settings are
// flushed.
func Serve(ctx context.Context, opts Options) error {
	// stdout carries JSON-RPC
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if opts.Author == "" {
		opts.Author = "mcp"
	}
	h := &handlers{opts: opts}

	hst, err := host.Open(ctx, host.Options{DB: opts.DB, Dir: opts.Dir, Author: opts.Author})
	switch {
	case errors.Is(err, repo.ErrNotInitialised):
		slog.Info("textfinder not initialised, call textfinder_init to create a store")
	case err != nil:
		slog.Error("failed to open store", "error", err)
		return err
	default:
		h.host = hst
	}
	defer h.shutdown()

	s := server.NewMCPServer(
		"textfinder",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)

	slog.Info("textfinder MCP server ready", "version", Version, "transport", "stdio")

	err = server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers serves tool calls against one host. Calls are serialised:
// the workspace and the finder overlay are a single shared editor.
type handlers struct {
	opts Options

	mu   sync.Mutex
	host *host.Host // nil until initialised
}

// shutdown leaves the editor as a user would find it after closing the
// plugin: overlay hidden, settings written.
func (h *handlers) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.host == nil {
		return
	}
	ctx := context.Background()
	err := errors.Join(h.host.Finder.Teardown(ctx), h.host.Close())
	log.Event("mcp:serve", "shutdown").Author(h.opts.Author).Write(err)
	if err != nil {
		slog.Error("shutdown", "error", err)
	}
	h.host = nil
}

// requireInit returns an error result if the store is not initialised.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.host == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// author returns the request's author parameter or the server default.
func (h *handlers) author(req mcp.CallToolRequest) string {
	return getString(req, "author", h.opts.Author)
}

// serial wraps fn so it runs under the handler lock.
func (h *handlers) serial(fn server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		return fn(ctx, req)
	}
}

// extContext builds the context extension tools run against.
func (h *handlers) extContext() extension.Context {
	return extension.NewContext(extension.Deps{
		Service:   h.host.Service,
		Config:    h.host.Config,
		Settings:  h.host.Settings,
		Workspace: h.host.Workspace,
		Finder:    h.host.Finder,
	})
}

// registerExtensionTools adds every tool contributed by a registered
// extension.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, h.serial(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if res := h.requireInit(); res != nil {
				return res, nil
			}
			return handler(ctx, h.extContext(), req)
		}))
	}
}

// registerResources adds URI-based buffer access.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"textfinder://buffers/{path}",
			"Buffer",
			mcp.WithTemplateDescription("Read buffer text by path or key"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readBuffer,
	)
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"textfinder://buffers/{path}/v/{version}",
			"Buffer Version",
			mcp.WithTemplateDescription("Read a specific version of a buffer"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readBuffer,
	)
	s.AddResource(
		mcp.NewResource(
			activeURI,
			"Active Editor",
			mcp.WithResourceDescription("Text of the focused buffer"),
			mcp.WithMIMEType("text/plain"),
		),
		h.readActive,
	)
}

// registerTools exposes the store and editor operations.
func registerTools(s *server.MCPServer, h *handlers) {
	add := func(t mcp.Tool, fn server.ToolHandlerFunc) { s.AddTool(t, h.serial(fn)) }

	add(mcp.NewTool("textfinder_init",
		mcp.WithDescription("Initialise a new textfinder store. Call this first if other tools return 'store not initialised'."),
	), h.initStore)

	add(mcp.NewTool("textfinder_list",
		mcp.WithDescription("List buffers in the store"),
		mcp.WithString("prefix", mcp.Description("Filter by path prefix")),
		mcp.WithString("glob", mcp.Description("Filter by glob pattern (supports *, **, ?)")),
		mcp.WithString("sort", mcp.Enum("name", "time"), mcp.Description("Sort order")),
		mcp.WithBoolean("reverse", mcp.Description("Reverse the sort order")),
		mcp.WithBoolean("include_deleted", mcp.Description("Include deleted buffers")),
		mcp.WithBoolean("deleted_only", mcp.Description("Show only deleted buffers")),
	), h.listBuffers)

	add(mcp.NewTool("textfinder_read",
		mcp.WithDescription("Read the text of one or more buffers"),
		mcp.WithArray("paths", mcp.Required(), mcp.Description("Buffer paths or 8-character keys"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithNumber("version", mcp.Description("Specific version to read (default: latest)")),
	), h.readBuffers)

	add(mcp.NewTool("textfinder_write",
		mcp.WithDescription("Write text to a buffer, creating it or adding a version"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Buffer path")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Buffer text")),
		mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		mcp.WithString("message", mcp.Description("Version message")),
	), h.writeBuffer)

	add(mcp.NewTool("textfinder_delete",
		mcp.WithDescription("Soft delete a buffer (recoverable via textfinder_restore)"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Buffer path or key")),
		mcp.WithBoolean("recursive", mcp.Description("Delete every buffer under path")),
	), h.deleteBuffer)

	add(mcp.NewTool("textfinder_restore",
		mcp.WithDescription("Restore a soft-deleted buffer"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Buffer path")),
	), h.restoreBuffer)

	add(mcp.NewTool("textfinder_revert",
		mcp.WithDescription("Write an earlier version back as the newest"),
		mcp.WithString("target", mcp.Required(), mcp.Description("Buffer path, or a version key")),
		mcp.WithNumber("version", mcp.Description("Version to revert to (required with a path)")),
		mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		mcp.WithString("message", mcp.Description("Version message")),
	), h.revertBuffer)

	add(mcp.NewTool("textfinder_history",
		mcp.WithDescription("Get version history for a buffer"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Buffer path or key")),
		mcp.WithNumber("limit", mcp.Description("Maximum versions to return")),
	), h.historyBuffer)

	add(mcp.NewTool("textfinder_diff",
		mcp.WithDescription("Show differences between two versions of a buffer (default: latest against previous)"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Buffer path")),
		mcp.WithNumber("version1", mcp.Description("First version")),
		mcp.WithNumber("version2", mcp.Description("Second version")),
	), h.diffBuffer)

	add(mcp.NewTool("textfinder_open",
		mcp.WithDescription("Focus a buffer in the editor. Positions are line:col, 1-indexed."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Buffer path")),
		mcp.WithString("cursor", mcp.Description("Cursor position, e.g. 3:7")),
		mcp.WithString("selection", mcp.Description("Selection, e.g. 3:7-3:12")),
		mcp.WithString("view", mcp.Enum("source", "preview"), mcp.Description("Display mode")),
	), h.openEditor)

	add(mcp.NewTool("textfinder_close",
		mcp.WithDescription("Close the active editor and the finder"),
	), h.closeEditor)

	add(mcp.NewTool("textfinder_select",
		mcp.WithDescription("Set the selection or move the cursor in the active editor"),
		mcp.WithString("selection", mcp.Description("Selection, e.g. 3:7-3:12")),
		mcp.WithString("cursor", mcp.Description("Cursor position; collapses the selection")),
		mcp.WithString("view", mcp.Enum("source", "preview"), mcp.Description("Display mode")),
	), h.selectEditor)

	add(mcp.NewTool("textfinder_status",
		mcp.WithDescription("Show the active editor, its selection and the finder state"),
	), h.statusEditor)

	add(mcp.NewTool("textfinder_import",
		mcp.WithDescription("Import text files from the filesystem as buffers"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem file or directory")),
		mcp.WithString("prefix", mcp.Description("Target path prefix")),
		mcp.WithString("glob", mcp.Description("Only import files matching this pattern")),
		mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		mcp.WithBoolean("flat", mcp.Description("Flatten directory structure")),
		mcp.WithBoolean("hidden", mcp.Description("Include hidden files and directories")),
		mcp.WithBoolean("dry_run", mcp.Description("Show what would be imported")),
	), h.importFiles)

	add(mcp.NewTool("textfinder_export",
		mcp.WithDescription("Export buffers to the filesystem"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Buffer path, key, or prefix (trailing /)")),
		mcp.WithString("dest", mcp.Required(), mcp.Description("Filesystem destination")),
		mcp.WithNumber("version", mcp.Description("Export a specific version (single buffer)")),
		mcp.WithBoolean("force", mcp.Description("Overwrite existing files")),
	), h.exportFiles)

	add(mcp.NewTool("textfinder_config_get",
		mcp.WithDescription("Get a CLI configuration value"),
		mcp.WithString("key", mcp.Description("Config key, or empty for all")),
	), h.configGet)

	add(mcp.NewTool("textfinder_config_set",
		mcp.WithDescription("Set a CLI configuration value"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
	), h.configSet)

	add(mcp.NewTool("textfinder_guide",
		mcp.WithDescription("Get guide content for textfinder commands"),
		mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'replace', 'find') or empty for the index")),
	), h.getGuide)
}
