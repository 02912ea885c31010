// Package service defines the shared interface for buffer operations.
// Commands and extensions depend on this interface rather than on the
// SQLite-backed implementation, so they can be tested with fakes.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/textfinder/internal/diff"
	"github.com/jpl-au/textfinder/internal/store"
)

// Service defines all buffer operations.
//
// Use document.New() or document.Open() to obtain an implementation and
// always Close it when done.
//
//	svc, err := document.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	doc, err := svc.Latest(ctx, "notes/todo.txt", false)
type Service interface {
	// Close checkpoints the WAL and releases the database.
	Close() error

	// Latest returns the most recent version of a buffer.
	// Returns store.ErrNotFound for deleted buffers unless includeDeleted.
	Latest(ctx context.Context, path string, includeDeleted bool) (*store.Document, error)

	// Version returns one historical version.
	Version(ctx context.Context, path string, version int) (*store.Document, error)

	// ByKey returns the version with the given 8-character key.
	ByKey(ctx context.Context, key string) (*store.Document, error)

	// Resolve returns a buffer by path or key. A path resolves to the
	// latest version, a key to that exact version. When an 8-character
	// input is both, the path wins.
	Resolve(ctx context.Context, pathOrKey string) (*store.Document, error)

	// List returns the latest version of each buffer under prefix.
	List(ctx context.Context, prefix string, includeDeleted bool) ([]store.Document, error)

	// History returns versions newest first, deleted ones included.
	// limit <= 0 returns every version.
	History(ctx context.Context, path string, limit int) ([]store.Document, error)

	// Exists reports whether an active buffer exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Write stores content as a new version and returns its number.
	Write(ctx context.Context, path, content, author, message string) (int, error)

	// Delete soft-deletes a buffer; Restore undoes it.
	Delete(ctx context.Context, path string) error
	Restore(ctx context.Context, path string) error

	// Diff compares two versions. Zero versions compare the latest with
	// the one before it.
	Diff(ctx context.Context, path string, v1, v2 int) (diff.Result, error)

	// Vacuum permanently removes soft-deleted buffers.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)

	// KV exposes the key-value table used for workspace and finder state.
	KV() store.KV

	// Dir returns the repository directory holding the database.
	Dir() string

	// DB returns the underlying connection. Do not close it directly.
	DB() *sql.DB

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error
}
