package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, data, 0o644))
	}
}

func TestRun_Directory(t *testing.T) {
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	ctx := context.Background()

	src := t.TempDir()
	writeFiles(t, src, map[string][]byte{
		"a.txt":        []byte("alpha"),
		"sub/b.md":     []byte("beta"),
		".hidden/c.md": []byte("hidden"),
		"bin.dat":      {0xff, 0xfe, 0x00},
	})

	var buf bytes.Buffer
	r, err := importer.Run(ctx, &buf, svc, src, importer.Options{Prefix: "in"})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Imported)
	assert.ElementsMatch(t, []string{"in/a.txt", "in/sub/b.md"}, r.Paths)
	assert.Len(t, r.Skipped, 1)

	doc, err := svc.Latest(ctx, "in/sub/b.md", false)
	require.NoError(t, err)
	assert.Equal(t, "beta", doc.Content)
}

func TestRun_PatternFlatDryRun(t *testing.T) {
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	ctx := context.Background()

	src := t.TempDir()
	writeFiles(t, src, map[string][]byte{
		"a.txt":     []byte("a"),
		"sub/b.txt": []byte("b"),
		"sub/c.md":  []byte("c"),
	})

	var buf bytes.Buffer
	r, err := importer.Run(ctx, &buf, svc, src, importer.Options{Pattern: "*.txt", Flat: true, DryRun: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, r.Paths)
	assert.Zero(t, r.Imported)
	assert.Contains(t, buf.String(), "Would import")

	docs, err := svc.List(ctx, "", false)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRun_SingleFile(t *testing.T) {
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	ctx := context.Background()

	src := t.TempDir()
	writeFiles(t, src, map[string][]byte{"note.txt": []byte("hello")})

	var buf bytes.Buffer
	r, err := importer.Run(ctx, &buf, svc, filepath.Join(src, "note.txt"), importer.Options{Author: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"note.txt"}, r.Paths)

	doc, err := svc.Latest(ctx, "note.txt", false)
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Author)
}
