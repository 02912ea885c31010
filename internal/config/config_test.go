package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultMaxPath, c.MaxPath())
	assert.Equal(t, int64(DefaultMaxContent), c.MaxContent())
	assert.Empty(t, c.SettingsPath())
	assert.NoError(t, c.Validate())
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    error
	}{
		{"author.name", "alice", nil},
		{"author.email", "alice@example.com", nil},
		{"limits.max_path", "256", nil},
		{"limits.max_path", "0", ErrInvalidValue},
		{"limits.max_path", "abc", ErrInvalidValue},
		{"limits.max_content", "4096", nil},
		{"limits.max_content", "-1", ErrInvalidValue},
		{"settings.path", "/tmp/data.json", nil},
		{"nope", "x", ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var c Config
			err := c.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, c.IsSet(tt.key))
				return
			}
			require.NoError(t, err)
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
			assert.True(t, c.IsSet(tt.key))
		})
	}
}

func TestSettingsPathClear(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("settings.path", "x.json"))
	require.NoError(t, c.Set("settings.path", ""))
	assert.False(t, c.IsSet("settings.path"))
}

func TestAll(t *testing.T) {
	var c Config
	all := c.All()
	assert.Len(t, all, len(ValidKeys()))
	assert.Equal(t, "1024", all["limits.max_path"])
}

func TestLoadScope_Local(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, c.Scope())

	require.NoError(t, c.Set("author.name", "bob"))
	require.NoError(t, c.Set("limits.max_path", "64"))
	require.NoError(t, c.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, "bob", loaded.Author.Name)
	assert.Equal(t, 64, loaded.MaxPath())
}

func TestLoadScope_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(Dir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(Dir, "config.yaml"), []byte("limits: [oops"), 0644))
	_, err := LoadScope(ScopeLocal)
	assert.ErrorContains(t, err, "malformed config file")

	require.NoError(t, os.WriteFile(filepath.Join(Dir, "config.yaml"), []byte("limits:\n  max_path: 0\n"), 0644))
	_, err = LoadScope(ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
