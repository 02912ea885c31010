// write.go implements document mutations.
//
// Writes never update content in place: each one inserts a new version with
// MAX(version)+1 computed inside the same transaction, so concurrent writers
// to one path serialise on the version number.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpl-au/textfinder/internal/validate"
)

// Write stores content as the next version of path and returns the new
// version number. New documents start at version 1. Writing to a deleted
// path starts a fresh active version on top of the deleted history.
func (s *SQLiteStore) Write(ctx context.Context, path, content string, opts WriteOptions) (int, error) {
	path, err := validate.Path(path, opts.MaxPath)
	if err != nil {
		return 0, err
	}
	if err := validate.Content(content, opts.MaxContent); err != nil {
		return 0, err
	}

	var version int
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var maxVer int
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM documents WHERE path = ?`, path).Scan(&maxVer); err != nil {
			return fmt.Errorf("get max version: %w", err)
		}

		id, err := genID()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO documents (key, path, content, version, author, message, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, path, content, maxVer+1, opts.Author, opts.Message, time.Now().Unix())
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		version = maxVer + 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

// Delete soft-deletes every version of path. Returns ErrNotFound if the
// document doesn't exist or is already deleted.
func (s *SQLiteStore) Delete(ctx context.Context, path string, opts DeleteOptions) error {
	path, err := validate.Path(path, opts.MaxPath)
	if err != nil {
		return err
	}
	return s.mark(ctx, "delete", path,
		`UPDATE documents SET deleted_at = ? WHERE path = ? AND deleted_at IS NULL`,
		time.Now().Unix(), path)
}

// Restore clears the deletion mark on every version of path. Returns
// ErrNotFound if nothing was deleted.
func (s *SQLiteStore) Restore(ctx context.Context, path string) error {
	path, err := validate.Path(path, 0)
	if err != nil {
		return err
	}
	return s.mark(ctx, "restore", path,
		`UPDATE documents SET deleted_at = NULL WHERE path = ? AND deleted_at IS NOT NULL`,
		path)
}

func (s *SQLiteStore) mark(ctx context.Context, op, path, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
