// tools_editor.go implements the MCP tools that focus a buffer and move
// its selection. Positions cross the wire as 1-indexed "line:col"
// strings, matching the CLI.

package mcp

import (
	"context"
	"errors"

	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

type editorJSON struct {
	Path      string `json:"path"`
	Selection string `json:"selection"`
	Cursor    string `json:"cursor"`
	View      string `json:"view"`
	Version   int    `json:"version,omitempty"`
	Selected  string `json:"selected,omitempty"`
}

func toEditorJSON(st workspace.State) editorJSON {
	return editorJSON{
		Path:      st.Path,
		Selection: span.Range{From: st.Anchor, To: st.Head}.String(),
		Cursor:    st.Head.String(),
		View:      string(st.View),
	}
}

// openEditor handles textfinder_open.
func (h *handlers) openEditor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	var opts workspace.OpenOptions
	if s := getString(req, "selection", ""); s != "" {
		r, err := workspace.ParseRange(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.Selection = &r
	}
	if s := getString(req, "cursor", ""); s != "" {
		p, err := workspace.ParsePosition(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.Cursor = &p
	}
	if s := getString(req, "view", ""); s != "" {
		v, err := workspace.ParseView(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.View = v
	}

	st, err := h.host.Workspace.Open(ctx, path, opts)

	log.Event("mcp:open", "open").Author(h.author(req)).Path(path).Resolved(st.Path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(toEditorJSON(st))
}

// closeEditor handles textfinder_close. The overlay is torn down first
// so its hidden state is saved against the buffer being closed.
func (h *handlers) closeEditor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	err := errors.Join(h.host.Finder.Teardown(ctx), h.host.Workspace.Close(ctx))

	log.Event("mcp:close", "close").Author(h.author(req)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("closed"), nil
}

// selectEditor handles textfinder_select. Selection wins over cursor;
// view applies either way.
func (h *handlers) selectEditor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	ws := h.host.Workspace

	sel := getString(req, "selection", "")
	cur := getString(req, "cursor", "")
	view := getString(req, "view", "")
	if sel == "" && cur == "" && view == "" {
		return mcp.NewToolResultError("one of selection, cursor or view is required"), nil
	}

	var (
		st  workspace.State
		err error
	)
	l := log.Event("mcp:select", "select").Author(h.author(req)).
		Detail("selection", sel).Detail("cursor", cur).Detail("view", view)
	defer func() { l.Path(st.Path).Write(err) }()

	switch {
	case sel != "":
		var r span.Range
		if r, err = workspace.ParseRange(sel); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		st, err = ws.Select(ctx, r)
	case cur != "":
		var p span.Position
		if p, err = workspace.ParsePosition(cur); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		st, err = ws.MoveCursor(ctx, p)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if view != "" {
		var v workspace.View
		if v, err = workspace.ParseView(view); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if st, err = ws.SetView(ctx, v); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return jsonResult(toEditorJSON(st))
}

// statusEditor handles textfinder_status.
func (h *handlers) statusEditor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	sess, err := h.host.Workspace.Active(ctx)
	if errors.Is(err, workspace.ErrNoActiveEditor) {
		log.Event("mcp:status", "status").Author(h.author(req)).Detail("active", false).Write(nil)
		return jsonResult(map[string]any{"active": false})
	}
	if err != nil {
		log.Event("mcp:status", "status").Author(h.author(req)).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	fst, err := h.host.Finder.Status(ctx)

	log.Event("mcp:status", "status").Author(h.author(req)).Path(sess.Path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ed := toEditorJSON(sess.State())
	ed.Version = sess.Version
	ed.Selected = sess.Buffer.SelectedText()
	return jsonResult(map[string]any{
		"active": true,
		"editor": ed,
		"finder": fst,
	})
}
