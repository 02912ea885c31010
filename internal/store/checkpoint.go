package store

import (
	"context"
	"fmt"
)

// Checkpoint flushes the WAL into the main database file and truncates it,
// removing the -wal and -shm files. Called on clean shutdown.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
