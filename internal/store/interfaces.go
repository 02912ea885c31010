// interfaces.go defines the storage abstraction.
//
// Documents are versioned and soft-deleted: a write never overwrites, and a
// delete only marks rows. The key-value table holds small JSON records that
// outlive a single CLI invocation, such as the focused editor state and the
// finder overlay state.

package store

import (
	"context"
	"database/sql"
	"time"
)

// Reader defines read-only document operations.
type Reader interface {
	// Latest retrieves the current version of a document.
	Latest(ctx context.Context, path string, includeDeleted bool) (*Document, error)

	// Version retrieves a specific historical version.
	Version(ctx context.Context, path string, version int) (*Document, error)

	// ByKey retrieves a document version by its 8-char key.
	ByKey(ctx context.Context, key string) (*Document, error)

	// List returns the latest version of each document under a prefix.
	List(ctx context.Context, prefix string, includeDeleted bool) ([]Document, error)

	// History returns versions newest first. limit <= 0 means all.
	History(ctx context.Context, path string, limit int) ([]Document, error)

	// Exists reports whether an active document exists at path.
	Exists(ctx context.Context, path string) (bool, error)
}

// Writer defines operations that modify documents.
type Writer interface {
	// Write creates a new version and returns its number.
	Write(ctx context.Context, path, content string, opts WriteOptions) (int, error)

	// Delete soft-deletes every version of a document.
	Delete(ctx context.Context, path string, opts DeleteOptions) error

	// Restore clears the deletion mark on a document.
	Restore(ctx context.Context, path string) error
}

// KV stores small named values.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// DeleteKey removes key. Missing keys are not an error.
	DeleteKey(ctx context.Context, key string) error
}

// Maintainer defines lifecycle operations.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum permanently removes soft-deleted documents.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)
}

// Store is the full persistence interface.
type Store interface {
	Reader
	Writer
	KV
	Maintainer
}
