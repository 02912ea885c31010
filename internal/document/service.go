// Package document provides buffer operations backed by the SQLite store.
// Service applies config limits, path normalisation and the default author
// on top of the raw store, and exposes the kv table for workspace state.
package document

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/textfinder/internal/config"
	"github.com/jpl-au/textfinder/internal/log"
	norm "github.com/jpl-au/textfinder/internal/path"
	"github.com/jpl-au/textfinder/internal/repo"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/store"
)

var _ service.Service = (*Service)(nil)

// DefaultAuthor is recorded when no author is configured.
const DefaultAuthor = "unknown"

// Service provides buffer operations backed by a Store.
type Service struct {
	store      *store.SQLiteStore
	dbPath     string
	maxPath    int
	maxContent int64
}

// New discovers the named database by walking up from the working
// directory. Returns repo.ErrNotInitialised if none is found.
func New(db string) (*Service, error) {
	return NewIn("", db)
}

// NewIn opens the named database under dir/.textfinder, or discovers it
// like New when dir is empty.
func NewIn(dir, db string) (*Service, error) {
	var dbPath string
	if dir == "" {
		p, err := repo.Discover(db)
		if err != nil {
			return nil, err
		}
		dbPath = p
	} else {
		dbPath = filepath.Join(dir, repo.Dir, repo.DBFileName(db))
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("%w: %s", repo.ErrNotInitialised, dbPath)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Open(dbPath, cfg)
}

// Open opens the database at dbPath directly, creating its schema if
// missing. cfg may be nil, in which case default limits apply.
func Open(dbPath string, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, err
	}
	return &Service{
		store:      s,
		dbPath:     dbPath,
		maxPath:    cfg.MaxPath(),
		maxContent: cfg.MaxContent(),
	}, nil
}

// Init initialises a new repository. See repo.Init.
func Init(force bool, db, dir string) error {
	return repo.Init(force, db, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig re-reads limits after the config command changed them.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.maxPath = cfg.MaxPath()
	s.maxContent = cfg.MaxContent()
	return nil
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the repository directory holding the database.
func (s *Service) Dir() string {
	return filepath.Dir(s.dbPath)
}

// KV returns the store's key-value table.
func (s *Service) KV() store.KV {
	return s.store
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}

func normalizePrefix(prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	return norm.Normalise(prefix)
}
