// Package repo initialises and discovers textfinder repositories.
//
// A repository is a .textfinder directory holding the SQLite database with
// the buffers and workspace state, plus the plugin settings file
// (data.json). Discovery walks up from the working directory the way git
// looks for .git.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/textfinder/internal/store"
)

const (
	// Dir is the repository directory name.
	Dir = ".textfinder"
	// DBFile is the default database filename.
	DBFile = "textfinder.db"
)

// ErrNotInitialised is returned when no repository is found.
var ErrNotInitialised = errors.New("textfinder not initialised (run 'textfinder init')")

const gitignore = `# textfinder - local state that should not be committed
config.yaml
*.lock
`

// DBFileName maps a database name to its file. Empty selects the default;
// "scratch" selects textfinder-scratch.db; names ending in .db are kept.
func DBFileName(name string) string {
	switch {
	case name == "":
		return DBFile
	case strings.HasSuffix(name, ".db"):
		return name
	default:
		return "textfinder-" + name + ".db"
	}
}

// Init creates dir/.textfinder and an initialised database. An existing
// database is an error unless force is set, in which case it is replaced.
// Settings and config files are left alone so a forced reinit keeps them.
func Init(force bool, db, dir string) error {
	if dir == "" {
		dir = "."
	}
	root := filepath.Join(dir, Dir)
	dbPath := filepath.Join(root, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	ignore := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(ignore); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(ignore, []byte(gitignore), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}
	return nil
}

// Discover walks up from the working directory to the first
// .textfinder directory containing the named database.
func Discover(db string) (string, error) {
	file := DBFileName(db)
	found, err := walkUp(func(dir string) bool {
		_, err := os.Stat(filepath.Join(dir, Dir, file))
		return err == nil
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(found, Dir, file), nil
}

// DiscoverDir walks up from the working directory to the first
// .textfinder directory and returns its path.
func DiscoverDir() (string, error) {
	found, err := walkUp(func(dir string) bool {
		info, err := os.Stat(filepath.Join(dir, Dir))
		return err == nil && info.IsDir()
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(found, Dir), nil
}

func walkUp(match func(dir string) bool) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		if match(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}
