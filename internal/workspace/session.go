package workspace

import (
	"context"
	"errors"

	"github.com/jpl-au/textfinder/internal/buffer"
	"github.com/jpl-au/textfinder/internal/store"
)

// Session is the focused buffer loaded for one operation.
type Session struct {
	Path    string
	Version int
	View    View
	Buffer  *buffer.Buffer

	w        *Workspace
	original string
}

// Active loads the focused buffer with its saved selection.
func (w *Workspace) Active(ctx context.Context) (*Session, error) {
	st, err := w.State(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := w.docs.Latest(ctx, st.Path, false)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoActiveEditor
	}
	if err != nil {
		return nil, err
	}

	b := buffer.New(doc.Content)
	b.Select(st.Anchor, st.Head)
	return &Session{
		Path:     doc.Path,
		Version:  doc.Version,
		View:     st.View,
		Buffer:   b,
		w:        w,
		original: doc.Content,
	}, nil
}

// Changed reports whether the buffer text differs from the loaded version.
func (s *Session) Changed() bool {
	return s.Buffer.Content() != s.original
}

// State returns the session as a persistable record.
func (s *Session) State() State {
	return State{Path: s.Path, Anchor: s.Buffer.Anchor(), Head: s.Buffer.Cursor(), View: s.View}
}

// Commit writes a new version when the text changed and saves the
// selection either way. It returns the version now current.
func (s *Session) Commit(ctx context.Context, author, message string) (int, error) {
	if s.Changed() {
		v, err := s.w.docs.Write(ctx, s.Path, s.Buffer.Content(), author, message)
		if err != nil {
			return s.Version, err
		}
		s.Version = v
		s.original = s.Buffer.Content()
	}
	return s.Version, s.w.save(ctx, s.State())
}
