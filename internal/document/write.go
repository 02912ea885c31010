package document

import (
	"context"
	"fmt"
	"time"

	"github.com/jpl-au/textfinder/internal/store"
)

// Write stores content as a new version of path and returns the version.
func (s *Service) Write(ctx context.Context, path, content, author, message string) (int, error) {
	if author == "" {
		author = DefaultAuthor
	}
	v, err := s.store.Write(ctx, path, content, store.WriteOptions{
		Author:     author,
		Message:    message,
		MaxPath:    s.maxPath,
		MaxContent: s.maxContent,
	})
	if err != nil {
		return 0, fmt.Errorf("write %q: %w", path, err)
	}
	return v, nil
}

// Delete soft-deletes a buffer.
func (s *Service) Delete(ctx context.Context, path string) error {
	if err := s.store.Delete(ctx, path, store.DeleteOptions{MaxPath: s.maxPath}); err != nil {
		return fmt.Errorf("delete %q: %w", path, err)
	}
	return nil
}

// Restore restores a soft-deleted buffer.
func (s *Service) Restore(ctx context.Context, path string) error {
	if err := s.store.Restore(ctx, path); err != nil {
		return fmt.Errorf("restore %q: %w", path, err)
	}
	return nil
}

// Vacuum permanently removes soft-deleted buffers under prefix.
func (s *Service) Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error) {
	prefix, err := normalizePrefix(prefix)
	if err != nil {
		return 0, err
	}
	return s.store.Vacuum(ctx, olderThan, prefix)
}
