package revert_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/revert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	ctx := context.Background()

	_, err = svc.Write(ctx, "doc", "original", "alice", "")
	require.NoError(t, err)
	_, err = svc.Write(ctx, "doc", "replaced", "alice", "find and replace")
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := revert.Run(ctx, &buf, svc, "doc", 1, revert.Options{Author: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.RevertedTo)
	assert.Equal(t, 3, r.NewVersion)
	assert.Equal(t, "Revert to v1", r.Message)

	doc, err := svc.Latest(ctx, "doc", false)
	require.NoError(t, err)
	assert.Equal(t, "original", doc.Content)
	assert.Equal(t, "bob", doc.Author)

	v2, err := svc.Version(ctx, "doc", 2)
	require.NoError(t, err)
	r, err = revert.Run(ctx, &buf, svc, v2.Key, 0, revert.Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, r.NewVersion)
}

func TestRun_Errors(t *testing.T) {
	svc, err := document.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	ctx := context.Background()

	_, err = svc.Write(ctx, "doc", "x", "alice", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = revert.Run(ctx, &buf, svc, "doc", 0, revert.Options{})
	assert.ErrorIs(t, err, revert.ErrVersionRequired)

	_, err = revert.Run(ctx, &buf, svc, "doc", 9, revert.Options{})
	assert.Error(t, err)

	require.NoError(t, svc.Delete(ctx, "doc"))
	_, err = revert.Run(ctx, &buf, svc, "doc", 1, revert.Options{})
	assert.ErrorContains(t, err, "is deleted")
}
