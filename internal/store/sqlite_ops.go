// sqlite_ops.go provides SQLite connection management and low-level helpers.
//
// This is the only file that imports the SQLite driver. WAL mode keeps the
// MCP server readable while a CLI invocation commits a replacement, and the
// busy timeout turns short lock contention into a wait instead of an error.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// pragmas are applied in order to every new store.
var pragmas = []struct {
	stmt, what string
}{
	{`PRAGMA journal_mode=WAL`, "WAL mode"},
	{`PRAGMA busy_timeout=5000`, "busy timeout"},
	{`PRAGMA synchronous=NORMAL`, "synchronous mode"},
}

// Open opens the SQLite database file at path. The caller must Close the
// returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %s: %w", p.what, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection. Extensions must not modify the
// documents or kv tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const docColumns = `id, key, path, content, version, author, message, created_at, deleted_at`

func scanDoc(sc scanner) (Document, error) {
	var (
		d   Document
		msg sql.NullString
		del sql.NullInt64
	)
	if err := sc.Scan(&d.ID, &d.Key, &d.Path, &d.Content, &d.Version, &d.Author, &msg, &d.CreatedAt, &del); err != nil {
		return d, err
	}
	d.Message = msg.String
	if del.Valid {
		d.DeletedAt = &del.Int64
	}
	return d, nil
}

// scanDocument maps sql.ErrNoRows to ErrNotFound.
func (s *SQLiteStore) scanDocument(row *sql.Row) (*Document, error) {
	d, err := scanDoc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

func (s *SQLiteStore) scanDocuments(rows *sql.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Tx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including on panic.
//
//	var n int
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    return tx.QueryRowContext(ctx, `SELECT ...`).Scan(&n)
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID returns a random 8-character lowercase base32 key.
func genID() (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b)), nil
}
