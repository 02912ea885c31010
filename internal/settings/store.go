// store.go provides the Persister implementations.
//
// FileStore keeps the record in a JSON file beside the database
// (.textfinder/data.json) or in the user's home directory when no repository
// exists. Writes go through a temp file and rename while holding an advisory
// lock, so a CLI invocation and a running MCP server never interleave.

package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// FileName is the settings file name inside a repository or global directory.
const FileName = "data.json"

// lockRetry is how often a blocked lock attempt is retried.
const lockRetry = 25 * time.Millisecond

// FilePath returns where settings live. With a repository directory the
// file sits beside the database; otherwise it is ~/.textfinder/data.json.
func FilePath(repoDir string) string {
	if repoDir != "" {
		return filepath.Join(repoDir, FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".textfinder", FileName)
	}
	return filepath.Join(home, ".textfinder", FileName)
}

// FileStore persists settings to a JSON file.
type FileStore struct {
	path string
	lock *flock.Flock
}

var _ Persister = (*FileStore)(nil)

// NewFileStore returns a FileStore for path. The lock file is path + ".lock".
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the settings file path.
func (f *FileStore) Path() string { return f.path }

// Read returns the file content, or nil when the file does not exist.
func (f *FileStore) Read(ctx context.Context) ([]byte, error) {
	if _, err := os.Stat(filepath.Dir(f.path)); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	locked, err := f.lock.TryRLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", f.path, err)
	}
	if locked {
		defer f.lock.Unlock()
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return data, nil
}

// Write replaces the file content atomically under an exclusive lock.
func (f *FileStore) Write(ctx context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	locked, err := f.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	if locked {
		defer f.lock.Unlock()
	}

	tmp, err := os.CreateTemp(dir, ".data-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("rename to %s: %w", f.path, err)
	}
	tmp = nil
	return nil
}

// MemoryStore keeps the serialised record in memory.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

var _ Persister = (*MemoryStore)(nil)

// Read returns a copy of the stored bytes.
func (m *MemoryStore) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores a copy of data.
func (m *MemoryStore) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Writes reports how many times Write has been called.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
