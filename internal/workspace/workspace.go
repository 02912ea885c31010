// Package workspace tracks which buffer is focused and where its cursor
// and selection are, across CLI invocations.
//
// The state is one JSON record in the store's kv table. Commands open a
// Session over it, edit the in-memory buffer and Commit, which writes a new
// buffer version only when the text changed and always saves the selection.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jpl-au/textfinder/internal/buffer"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/store"
)

// ErrNoActiveEditor is returned when no buffer is focused, or the focused
// buffer has since been deleted.
var ErrNoActiveEditor = errors.New("no active editor")

// ErrInvalidView is returned by SetView for an unknown mode.
var ErrInvalidView = errors.New("view must be source or preview")

// stateKey is the kv key holding the focused editor state.
const stateKey = "workspace.active"

// View is how the focused buffer is displayed.
type View string

const (
	ViewSource  View = "source"
	ViewPreview View = "preview"
)

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewSource, ViewPreview:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
	}
}

// State is the persisted record of the focused editor.
type State struct {
	Path   string        `json:"path"`
	Anchor span.Position `json:"anchor"`
	Head   span.Position `json:"head"`
	View   View          `json:"view"`
}

// Selection returns the normalised selection.
func (s State) Selection() span.Range {
	return span.Range{From: s.Anchor, To: s.Head}.Normalise()
}

// Documents is the part of the document service the workspace needs.
type Documents interface {
	Latest(ctx context.Context, path string, includeDeleted bool) (*store.Document, error)
	Write(ctx context.Context, path, content, author, message string) (int, error)
}

// Workspace loads and saves the focused editor state.
type Workspace struct {
	docs Documents
	kv   store.KV
}

// New returns a Workspace over docs, persisting state in kv.
func New(docs Documents, kv store.KV) *Workspace {
	return &Workspace{docs: docs, kv: kv}
}

// OpenOptions positions the cursor when a buffer is opened. Selection
// wins over Cursor when both are set.
type OpenOptions struct {
	Cursor    *span.Position
	Selection *span.Range
	View      View
}

// Open focuses the buffer at path. Positions are clamped into the buffer.
func (w *Workspace) Open(ctx context.Context, path string, opts OpenOptions) (State, error) {
	doc, err := w.docs.Latest(ctx, path, false)
	if err != nil {
		return State{}, err
	}

	b := buffer.New(doc.Content)
	switch {
	case opts.Selection != nil:
		b.SetSelection(*opts.Selection)
	case opts.Cursor != nil:
		b.SetCursor(*opts.Cursor)
	}

	view := opts.View
	if view == "" {
		view = ViewSource
	}

	st := State{Path: doc.Path, Anchor: b.Anchor(), Head: b.Cursor(), View: view}
	return st, w.save(ctx, st)
}

// Close clears the focus. Closing with nothing open is not an error.
func (w *Workspace) Close(ctx context.Context) error {
	return w.kv.DeleteKey(ctx, stateKey)
}

// State returns the focused editor state without loading the buffer.
func (w *Workspace) State(ctx context.Context) (State, error) {
	data, err := w.kv.Get(ctx, stateKey)
	if errors.Is(err, store.ErrNotFound) {
		return State{}, ErrNoActiveEditor
	}
	if err != nil {
		return State{}, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode workspace state: %w", err)
	}
	if st.Path == "" {
		return State{}, ErrNoActiveEditor
	}
	if st.View == "" {
		st.View = ViewSource
	}
	return st, nil
}

// Select sets the selection of the focused buffer. The head ends at r.To.
func (w *Workspace) Select(ctx context.Context, r span.Range) (State, error) {
	return w.edit(ctx, func(s *Session) { s.Buffer.SetSelection(r) })
}

// MoveCursor collapses the selection to p.
func (w *Workspace) MoveCursor(ctx context.Context, p span.Position) (State, error) {
	return w.edit(ctx, func(s *Session) { s.Buffer.SetCursor(p) })
}

// SetView switches the display mode of the focused buffer.
func (w *Workspace) SetView(ctx context.Context, v View) (State, error) {
	if _, err := ParseView(string(v)); err != nil {
		return State{}, err
	}
	return w.edit(ctx, func(s *Session) { s.View = v })
}

func (w *Workspace) edit(ctx context.Context, fn func(s *Session)) (State, error) {
	s, err := w.Active(ctx)
	if err != nil {
		return State{}, err
	}
	fn(s)
	st := s.State()
	return st, w.save(ctx, st)
}

func (w *Workspace) save(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode workspace state: %w", err)
	}
	return w.kv.Put(ctx, stateKey, data)
}
