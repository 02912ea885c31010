package store

import (
	"context"
	"fmt"
	"time"
)

// Vacuum permanently removes soft-deleted documents under prefix. With a
// non-nil olderThan only documents deleted before now-olderThan go.
// Returns the number of rows removed.
func (s *SQLiteStore) Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error) {
	query := `DELETE FROM documents WHERE deleted_at IS NOT NULL AND path LIKE ? ESCAPE '\'`
	args := []any{likePrefix(prefix)}
	if olderThan != nil {
		query += ` AND deleted_at < ?`
		args = append(args, time.Now().Add(-*olderThan).Unix())
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("vacuum: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("vacuum: %w", err)
	}
	return n, nil
}
