package workspace_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*workspace.Workspace, *document.Service) {
	t.Helper()
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	_, err = svc.Write(context.Background(), "doc", "foo\nbar\nbaz", "tester", "")
	require.NoError(t, err)
	return workspace.New(svc, svc.KV()), svc
}

func pos(l, c int) span.Position { return span.Position{Line: l, Col: c} }

func TestActive_NothingOpen(t *testing.T) {
	w, _ := setup(t)
	_, err := w.Active(context.Background())
	assert.ErrorIs(t, err, workspace.ErrNoActiveEditor)

	_, err = w.Select(context.Background(), span.Range{})
	assert.ErrorIs(t, err, workspace.ErrNoActiveEditor)
}

func TestOpen_ClampsPositions(t *testing.T) {
	w, _ := setup(t)
	ctx := context.Background()

	c := pos(9, 9)
	st, err := w.Open(ctx, "doc", workspace.OpenOptions{Cursor: &c})
	require.NoError(t, err)
	assert.Equal(t, pos(2, 3), st.Head)
	assert.Equal(t, workspace.ViewSource, st.View)

	s, err := w.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, "doc", s.Path)
	assert.Equal(t, 1, s.Version)
	assert.Equal(t, pos(2, 3), s.Buffer.Cursor())
}

func TestOpen_Missing(t *testing.T) {
	w, _ := setup(t)
	_, err := w.Open(context.Background(), "missing", workspace.OpenOptions{})
	assert.Error(t, err)
}

func TestSelectAndCursor(t *testing.T) {
	w, _ := setup(t)
	ctx := context.Background()
	_, err := w.Open(ctx, "doc", workspace.OpenOptions{})
	require.NoError(t, err)

	st, err := w.Select(ctx, span.Range{From: pos(1, 3), To: pos(0, 1)})
	require.NoError(t, err)
	assert.Equal(t, pos(1, 3), st.Anchor)
	assert.Equal(t, pos(0, 1), st.Head)
	assert.Equal(t, span.Range{From: pos(0, 1), To: pos(1, 3)}, st.Selection())

	s, err := w.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, "oo\nbar", s.Buffer.SelectedText())

	st, err = w.MoveCursor(ctx, pos(1, 1))
	require.NoError(t, err)
	assert.True(t, st.Selection().Empty())
}

func TestSetView(t *testing.T) {
	w, _ := setup(t)
	ctx := context.Background()
	_, err := w.Open(ctx, "doc", workspace.OpenOptions{})
	require.NoError(t, err)

	st, err := w.SetView(ctx, workspace.ViewPreview)
	require.NoError(t, err)
	assert.Equal(t, workspace.ViewPreview, st.View)

	_, err = w.SetView(ctx, "split")
	assert.ErrorIs(t, err, workspace.ErrInvalidView)
}

func TestClose(t *testing.T) {
	w, _ := setup(t)
	ctx := context.Background()
	_, err := w.Open(ctx, "doc", workspace.OpenOptions{})
	require.NoError(t, err)

	require.NoError(t, w.Close(ctx))
	require.NoError(t, w.Close(ctx))
	_, err = w.Active(ctx)
	assert.ErrorIs(t, err, workspace.ErrNoActiveEditor)
}

func TestActive_DeletedBuffer(t *testing.T) {
	w, svc := setup(t)
	ctx := context.Background()
	_, err := w.Open(ctx, "doc", workspace.OpenOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "doc"))

	_, err = w.Active(ctx)
	assert.ErrorIs(t, err, workspace.ErrNoActiveEditor)
}

func TestCommit(t *testing.T) {
	w, svc := setup(t)
	ctx := context.Background()
	c := pos(1, 0)
	_, err := w.Open(ctx, "doc", workspace.OpenOptions{Cursor: &c})
	require.NoError(t, err)

	s, err := w.Active(ctx)
	require.NoError(t, err)

	v, err := s.Commit(ctx, "tester", "no-op")
	require.NoError(t, err)
	assert.Equal(t, 1, v, "unchanged text writes no version")

	s.Buffer.ReplaceRange(span.Range{From: pos(1, 0), To: pos(1, 3)}, "BAR")
	assert.True(t, s.Changed())
	v, err = s.Commit(ctx, "tester", "edit")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.False(t, s.Changed())

	doc, err := svc.Latest(ctx, "doc", false)
	require.NoError(t, err)
	assert.Equal(t, "foo\nBAR\nbaz", doc.Content)
	assert.Equal(t, "edit", doc.Message)

	st, err := w.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, pos(1, 3), st.Head)
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    span.Position
		wantErr bool
	}{
		{"1:1", pos(0, 0), false},
		{"3:4", pos(2, 3), false},
		{"2", pos(1, 0), false},
		{" 2:2 ", pos(1, 1), false},
		{"0:1", span.Position{}, true},
		{"1:0", span.Position{}, true},
		{"a:b", span.Position{}, true},
		{"", span.Position{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := workspace.ParsePosition(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, workspace.ErrInvalidPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange(t *testing.T) {
	r, err := workspace.ParseRange("2:4-2:1")
	require.NoError(t, err)
	assert.Equal(t, span.Range{From: pos(1, 3), To: pos(1, 0)}, r)

	_, err = workspace.ParseRange("2:4")
	assert.ErrorIs(t, err, workspace.ErrInvalidPosition)
	_, err = workspace.ParseRange("2:4-x")
	assert.ErrorIs(t, err, workspace.ErrInvalidPosition)
}
