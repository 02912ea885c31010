package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/textfinder/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "textfinder.db", repo.DBFileName(""))
	assert.Equal(t, "textfinder-scratch.db", repo.DBFileName("scratch"))
	assert.Equal(t, "custom.db", repo.DBFileName("custom.db"))
}

func TestInitAndDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, repo.Init(false, "", dir))

	assert.FileExists(t, filepath.Join(dir, repo.Dir, repo.DBFile))
	assert.FileExists(t, filepath.Join(dir, repo.Dir, ".gitignore"))

	err := repo.Init(false, "", dir)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, repo.Init(true, "", dir))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	got, err := repo.Discover("")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, repo.Dir, repo.DBFile))
	require.NoError(t, err)
	got, err = filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	gotDir, err := repo.DiscoverDir()
	require.NoError(t, err)
	assert.Equal(t, repo.Dir, filepath.Base(gotDir))

	_, err = repo.Discover("missing")
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}
