package rm_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/rm"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) service.Service {
	t.Helper()
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestRun_ResolvesKeyToPath(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Write(ctx, "notes/readme", "content", "tester", "initial")
	require.NoError(t, err)
	doc, err := svc.Latest(ctx, "notes/readme", false)
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := rm.Run(ctx, &buf, svc, doc.Key, rm.Options{})
	require.NoError(t, err)
	assert.Equal(t, "notes/readme", result.Path)
	assert.Equal(t, []string{"notes/readme"}, result.Deleted)
}

func TestRun_Recursive(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, p := range []string{"notes/a", "notes/b", "other"} {
		_, err := svc.Write(ctx, p, "x", "tester", "")
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	result, err := rm.Run(ctx, &buf, svc, "notes", rm.Options{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes/a", "notes/b"}, result.Deleted)

	exists, err := svc.Exists(ctx, "other")
	require.NoError(t, err)
	assert.True(t, exists)

	buf.Reset()
	_, err = rm.Run(ctx, &buf, svc, "notes", rm.Options{Recursive: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No buffers found")
}

func TestRestore(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Write(ctx, "doc", "x", "tester", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = rm.Run(ctx, &buf, svc, "doc", rm.Options{})
	require.NoError(t, err)
	_, err = rm.Run(ctx, &buf, svc, "doc", rm.Options{})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = rm.Restore(ctx, &buf, svc, "doc")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Restored doc")
}
