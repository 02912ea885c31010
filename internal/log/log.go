// Package log records an audit trail of textfinder operations in
// ~/.textfinder/log/textfinder-log.db, across every repository on the
// machine.
//
// Entries are built fluently and written once the outcome is known:
//
//	log.Event("replace:find-and-replace-in-selection", "replace").
//		Author(cmd.Author()).
//		Path(res.Path).
//		Detail("changed", res.Changed).
//		Write(err)
//
// Sources are "{extension}:{command}" for CLI commands and "mcp:{tool}"
// for MCP tools. Logging is best effort: a failed audit write never fails
// the operation being audited.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record.
type Entry struct {
	Source  string // "replace:find-and-replace-in-selection", "mcp:textfinder_find"
	Author  string
	Action  string // read, write, replace, search, settings, ...
	Path    string // buffer path as requested
	Version int    // version requested

	ResolvedPath  string // canonical path when it differs from Path
	ResultVersion int    // version created or read

	Start int64
	End   int64

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs an Entry. Create with Event and finish with Write.
type Builder struct {
	entry Entry
}

// Event starts an entry and stamps its start time.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the buffer path the operation targets.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Version sets the requested version.
func (b *Builder) Version(version int) *Builder {
	b.entry.Version = version
	return b
}

// Resolved sets the canonical path, e.g. after a key lookup.
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// ResultVersion sets the version written or read.
func (b *Builder) ResultVersion(version int) *Builder {
	b.entry.ResultVersion = version
	return b
}

// Detail adds an operation-specific value, stored as JSON.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write completes the entry. A nil err records success.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Calling it again is a no-op.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject tags subsequent entries with a hash of the repository dir.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes e. It is a no-op until Open succeeds.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
