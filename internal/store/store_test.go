package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/textfinder/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func writeOpts(author, msg string) store.WriteOptions {
	return store.WriteOptions{Author: author, Message: msg}
}

func TestStore_WriteAndLatest(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	v, err := s.Write(ctx, "notes/todo", "foo\nbar\nbaz", writeOpts("alice", "initial"))
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	doc, err := s.Latest(ctx, "notes/todo", false)
	require.NoError(t, err)
	assert.Equal(t, "notes/todo", doc.Path)
	assert.Equal(t, "foo\nbar\nbaz", doc.Content)
	assert.Equal(t, "alice", doc.Author)
	assert.Equal(t, "initial", doc.Message)
	assert.Equal(t, 1, doc.Version)
	assert.Len(t, doc.Key, 8)
	assert.Nil(t, doc.DeletedAt)
}

func TestStore_VersionIncrement(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for i, content := range []string{"v1", "v2", "v3"} {
		v, err := s.Write(ctx, "doc", content, writeOpts("alice", ""))
		require.NoError(t, err)
		assert.Equal(t, i+1, v)
	}

	doc, err := s.Latest(ctx, "doc", false)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Version)
	assert.Equal(t, "v3", doc.Content)

	v1, err := s.Version(ctx, "doc", 1)
	require.NoError(t, err)
	assert.Equal(t, "v1", v1.Content)
}

func TestStore_ByKey(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Write(ctx, "doc", "content", writeOpts("alice", ""))
	require.NoError(t, err)
	doc, err := s.Latest(ctx, "doc", false)
	require.NoError(t, err)

	byKey, err := s.ByKey(ctx, doc.Key)
	require.NoError(t, err)
	assert.Equal(t, doc.Path, byKey.Path)
	assert.Equal(t, doc.Content, byKey.Content)
}

func TestStore_NotFound(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Latest(ctx, "missing", false)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Version(ctx, "missing", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.ByKey(ctx, "badkey00")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, p := range []string{"notes/a", "notes/b", "notes_x", "other"} {
		_, err := s.Write(ctx, p, p, writeOpts("alice", ""))
		require.NoError(t, err)
	}
	_, err := s.Write(ctx, "notes/a", "second", writeOpts("alice", ""))
	require.NoError(t, err)

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"all", "", []string{"notes/a", "notes/b", "notes_x", "other"}},
		{"prefix", "notes/", []string{"notes/a", "notes/b"}},
		{"underscore is literal", "notes_", []string{"notes_x"}},
		{"no match", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := s.List(ctx, tt.prefix, false)
			require.NoError(t, err)
			var got []string
			for _, d := range docs {
				got = append(got, d.Path)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	docs, err := s.List(ctx, "notes/a", false)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "second", docs[0].Content)
}

func TestStore_History(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, c := range []string{"one", "two", "three"} {
		_, err := s.Write(ctx, "doc", c, writeOpts("alice", c))
		require.NoError(t, err)
	}

	all, err := s.History(ctx, "doc", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].Version)
	assert.Equal(t, 1, all[2].Version)

	limited, err := s.History(ctx, "doc", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStore_DeleteRestore(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Write(ctx, "doc", "content", writeOpts("alice", ""))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "doc", store.DeleteOptions{}))

	exists, err := s.Exists(ctx, "doc")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.Latest(ctx, "doc", false)
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err := s.Latest(ctx, "doc", true)
	require.NoError(t, err)
	assert.NotNil(t, deleted.DeletedAt)

	assert.ErrorIs(t, s.Delete(ctx, "doc", store.DeleteOptions{}), store.ErrNotFound)

	require.NoError(t, s.Restore(ctx, "doc"))
	exists, err = s.Exists(ctx, "doc")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, s.Restore(ctx, "doc"), store.ErrNotFound)
}

func TestStore_WriteValidation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Write(ctx, "", "x", writeOpts("alice", ""))
	assert.Error(t, err)

	_, err = s.Write(ctx, "doc", "too long", store.WriteOptions{Author: "alice", MaxContent: 3})
	assert.Error(t, err)

	v, err := s.Write(ctx, "empty", "", writeOpts("alice", ""))
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestStore_KV(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "workspace.active", []byte(`{"path":"doc"}`)))
	got, err := s.Get(ctx, "workspace.active")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"doc"}`, string(got))

	require.NoError(t, s.Put(ctx, "workspace.active", []byte(`{"path":"other"}`)))
	got, err = s.Get(ctx, "workspace.active")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"other"}`, string(got))

	require.NoError(t, s.DeleteKey(ctx, "workspace.active"))
	require.NoError(t, s.DeleteKey(ctx, "workspace.active"))
	_, err = s.Get(ctx, "workspace.active")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, s.Put(ctx, "", []byte("x")))
}

func TestStore_UniqueKeys(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for range 20 {
		_, err := s.Write(ctx, "doc", "x", writeOpts("alice", ""))
		require.NoError(t, err)
	}
	docs, err := s.History(ctx, "doc", 0)
	require.NoError(t, err)
	for _, d := range docs {
		assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
		seen[d.Key] = true
	}
}

func TestStore_Tx(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES ('k', 'v', 0)`)
		require.NoError(t, err)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Checkpoint(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Write(ctx, "doc", "content", writeOpts("alice", ""))
	require.NoError(t, err)
	assert.NoError(t, s.Checkpoint(ctx))
}

func TestDocument_ToJSON(t *testing.T) {
	del := int64(10)
	d := store.Document{Key: "abcd1234", Path: "doc", Content: "x", Version: 2, Author: "a", CreatedAt: 0, DeletedAt: &del}

	j := d.ToJSON(false)
	assert.Empty(t, j.Content)
	assert.True(t, j.Deleted)
	assert.Equal(t, "1970-01-01T00:00:00Z", j.CreatedAt)

	assert.Equal(t, "x", d.ToJSON(true).Content)
}

func TestStore_Vacuum(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, p := range []string{"keep", "gone/a", "gone/b"} {
		_, err := s.Write(ctx, p, "x", writeOpts("alice", ""))
		require.NoError(t, err)
	}
	require.NoError(t, s.Delete(ctx, "gone/a", store.DeleteOptions{}))
	require.NoError(t, s.Delete(ctx, "gone/b", store.DeleteOptions{}))

	hour := time.Hour
	n, err := s.Vacuum(ctx, &hour, "")
	require.NoError(t, err)
	assert.Zero(t, n, "recent deletions are retained")

	n, err = s.Vacuum(ctx, nil, "gone/a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Vacuum(ctx, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Latest(ctx, "gone/b", true)
	assert.ErrorIs(t, err, store.ErrNotFound)
	exists, err := s.Exists(ctx, "keep")
	require.NoError(t, err)
	assert.True(t, exists)
}
