// read.go implements document retrieval for the SQLite store.
//
// Reads resolve to the highest version of a path unless a specific version is
// requested. Soft-deleted documents stay invisible unless the caller opts in.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Latest returns the highest version of the document at path.
func (s *SQLiteStore) Latest(ctx context.Context, path string, includeDeleted bool) (*Document, error) {
	query := `SELECT ` + docColumns + ` FROM documents WHERE path = ?`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY version DESC LIMIT 1`

	return s.scanDocument(s.db.QueryRowContext(ctx, query, path))
}

// Version returns one historical version regardless of deletion state.
func (s *SQLiteStore) Version(ctx context.Context, path string, version int) (*Document, error) {
	query := `SELECT ` + docColumns + ` FROM documents WHERE path = ? AND version = ?`
	return s.scanDocument(s.db.QueryRowContext(ctx, query, path, version))
}

// ByKey returns the document version with the given 8-character key.
func (s *SQLiteStore) ByKey(ctx context.Context, key string) (*Document, error) {
	query := `SELECT ` + docColumns + ` FROM documents WHERE key = ?`
	return s.scanDocument(s.db.QueryRowContext(ctx, query, key))
}

// List returns the latest version of every document whose path starts with
// prefix, ordered by path.
func (s *SQLiteStore) List(ctx context.Context, prefix string, includeDeleted bool) ([]Document, error) {
	filter := ``
	if !includeDeleted {
		filter = ` AND deleted_at IS NULL`
	}

	query := `SELECT d.id, d.key, d.path, d.content, d.version, d.author, d.message, d.created_at, d.deleted_at
		FROM documents d
		INNER JOIN (
			SELECT path, MAX(version) AS max_version FROM documents
			WHERE path LIKE ? ESCAPE '\'` + filter + `
			GROUP BY path
		) latest ON d.path = latest.path AND d.version = latest.max_version
		ORDER BY d.path`

	rows, err := s.db.QueryContext(ctx, query, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	return s.scanDocuments(rows)
}

// History returns versions of a document newest first, including deleted
// ones so the history of a removed document can still be inspected.
func (s *SQLiteStore) History(ctx context.Context, path string, limit int) ([]Document, error) {
	query := `SELECT ` + docColumns + ` FROM documents WHERE path = ? ORDER BY version DESC`
	args := []any{path}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history for %s: %w", path, err)
	}
	defer rows.Close()

	return s.scanDocuments(rows)
}

// Exists reports whether an active document exists at path.
func (s *SQLiteStore) Exists(ctx context.Context, path string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE path = ? AND deleted_at IS NULL LIMIT 1`, path).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", path, err)
	}
	return true, nil
}

// likePrefix escapes LIKE wildcards so "a_b" lists only paths under "a_b".
func likePrefix(prefix string) string {
	var b []byte
	for i := 0; i < len(prefix); i++ {
		switch c := prefix[i]; c {
		case '%', '_', '\\':
			b = append(b, '\\', c)
		default:
			b = append(b, c)
		}
	}
	return string(b) + "%"
}
