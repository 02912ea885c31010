package findreplace_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/findreplace"
	"github.com/jpl-au/textfinder/internal/settings"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc *document.Service
	ws  *workspace.Workspace
}

func setup(t *testing.T, content string) env {
	t.Helper()
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	_, err = svc.Write(context.Background(), "doc", content, "tester", "")
	require.NoError(t, err)
	return env{svc: svc, ws: workspace.New(svc, svc.KV())}
}

func (e env) open(t *testing.T, opts workspace.OpenOptions) {
	t.Helper()
	_, err := e.ws.Open(context.Background(), "doc", opts)
	require.NoError(t, err)
}

func (e env) content(t *testing.T) (string, int) {
	t.Helper()
	doc, err := e.svc.Latest(context.Background(), "doc", false)
	require.NoError(t, err)
	return doc.Content, doc.Version
}

func cfg(findText, findRegexp, flags, repl string) settings.Settings {
	s := settings.Default()
	s.FindText, s.FindRegexp, s.RegexpFlags, s.Replace = findText, findRegexp, flags, repl
	return s
}

func pos(l, c int) span.Position { return span.Position{Line: l, Col: c} }

func TestRun_NoActiveEditor(t *testing.T) {
	e := setup(t, "foo")
	var buf bytes.Buffer

	res, err := findreplace.Run(context.Background(), &buf, e.ws, cfg("foo", "", "g", "bar"), findreplace.Options{})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, buf.String())

	got, v := e.content(t)
	assert.Equal(t, "foo", got)
	assert.Equal(t, 1, v)
}

func TestRun_CursorLine(t *testing.T) {
	e := setup(t, "foo\nbar\nbaz")
	c := pos(2, 1)
	e.open(t, workspace.OpenOptions{Cursor: &c})

	var buf bytes.Buffer
	res, err := findreplace.Run(context.Background(), &buf, e.ws, cfg("baz", "", "g", "qux"), findreplace.Options{Author: "alice"})
	require.NoError(t, err)

	assert.Equal(t, span.Range{From: pos(2, 0), To: pos(2, 3)}, res.Range)
	assert.Equal(t, "3:1", res.From)
	assert.Equal(t, "3:4", res.To)
	assert.Equal(t, "baz", res.Before)
	assert.Equal(t, "qux", res.After)
	assert.True(t, res.Changed)
	assert.Equal(t, 2, res.Version)
	assert.Contains(t, buf.String(), "Replaced 3:1-3:4 in doc (v2)")

	got, v := e.content(t)
	assert.Equal(t, "foo\nbar\nqux", got)
	assert.Equal(t, 2, v)

	st, err := e.ws.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pos(2, 3), st.Head)
}

func TestRun_DefaultAuthor(t *testing.T) {
	e := setup(t, "foo")
	e.open(t, workspace.OpenOptions{})

	res, err := findreplace.Run(context.Background(), &bytes.Buffer{}, e.ws, cfg("foo", "", "g", "bar"), findreplace.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)

	doc, err := e.svc.Latest(context.Background(), "doc", false)
	require.NoError(t, err)
	assert.Equal(t, "bar", doc.Content)
	assert.Equal(t, findreplace.DefaultAuthor, doc.Author)
}

func TestRun_SelectionIgnoresCursor(t *testing.T) {
	e := setup(t, "aab\naab")
	sel := span.Range{From: pos(1, 0), To: pos(1, 3)}
	e.open(t, workspace.OpenOptions{Selection: &sel})

	res, err := findreplace.Run(context.Background(), &bytes.Buffer{}, e.ws, cfg("a", "b+", "g", "b"), findreplace.Options{})
	require.NoError(t, err)
	assert.Equal(t, "b", res.After)

	got, _ := e.content(t)
	assert.Equal(t, "aab\nb", got)
}

func TestRun_CompileErrorKeepsLiteral(t *testing.T) {
	e := setup(t, "x")
	e.open(t, workspace.OpenOptions{})

	res, err := findreplace.Run(context.Background(), &bytes.Buffer{}, e.ws, cfg("x", "(", "g", "y"), findreplace.Options{})
	require.NoError(t, err)
	assert.Contains(t, res.Notice, "invalid pattern /(/g")
	assert.Equal(t, "y", res.After)

	got, v := e.content(t)
	assert.Equal(t, "y", got)
	assert.Equal(t, 2, v)
}

func TestRun_Unchanged(t *testing.T) {
	e := setup(t, "foo\nbar")
	c := pos(1, 0)
	e.open(t, workspace.OpenOptions{Cursor: &c})

	var buf bytes.Buffer
	res, err := findreplace.Run(context.Background(), &buf, e.ws, cfg("", "", "g", ""), findreplace.Options{})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 1, res.Version)
	assert.Contains(t, buf.String(), "No changes")

	_, v := e.content(t)
	assert.Equal(t, 1, v)
}

func TestRun_DryRun(t *testing.T) {
	e := setup(t, "foo\nbar")
	e.open(t, workspace.OpenOptions{})

	var buf bytes.Buffer
	res, err := findreplace.Run(context.Background(), &buf, e.ws, cfg("foo", "", "g", "FOO"), findreplace.Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Contains(t, res.Diff, "- foo")
	assert.Contains(t, res.Diff, "+ FOO")
	assert.Contains(t, buf.String(), "Would replace")
	assert.Contains(t, buf.String(), "--- doc v1")

	got, v := e.content(t)
	assert.Equal(t, "foo\nbar", got)
	assert.Equal(t, 1, v)

	st, err := e.ws.State(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Selection().Empty(), "dry run leaves the selection alone")
}

type brokenHost struct{}

func (brokenHost) Active(context.Context) (*workspace.Session, error) {
	return nil, errors.New("database is locked")
}

func TestRun_HostError(t *testing.T) {
	_, err := findreplace.Run(context.Background(), &bytes.Buffer{}, brokenHost{}, settings.Default(), findreplace.Options{})
	assert.ErrorContains(t, err, "database is locked")
}
