// Package store defines document persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Document represents a single version of a document. Each write creates a new
// version, so every find/replace commit can be inspected and rolled back.
type Document struct {
	ID        int64  // Database primary key (internal)
	Key       string // Unique 8-char identifier
	Path      string // Document path (e.g., "notes/todo")
	Content   string // Full document content
	Version   int    // Version number (1, 2, 3, ...)
	Author    string // Who created this version
	Message   string // Commit message for this version
	CreatedAt int64  // Unix timestamp of creation
	DeletedAt *int64 // Unix timestamp of deletion, nil if not deleted
}

// DocJSON is the API-friendly representation of a Document with RFC3339
// timestamps and optional content.
type DocJSON struct {
	Key       string `json:"key"`
	Path      string `json:"path"`
	Content   string `json:"content,omitempty"`
	Version   int    `json:"version"`
	Author    string `json:"author"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at"`
	Deleted   bool   `json:"deleted,omitempty"`
}

// ToJSON converts a Document to its API representation. The content parameter
// controls whether to include document content, allowing efficient listings.
func (d *Document) ToJSON(content bool) DocJSON {
	j := DocJSON{
		Key:       d.Key,
		Path:      d.Path,
		Version:   d.Version,
		Author:    d.Author,
		Message:   d.Message,
		CreatedAt: time.Unix(d.CreatedAt, 0).UTC().Format(time.RFC3339),
		Deleted:   d.DeletedAt != nil,
	}
	if content {
		j.Content = d.Content
	}
	return j
}

// MarshalJSON encodes a value with indentation for human-readable output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteOptions configures a write operation.
type WriteOptions struct {
	Author     string
	Message    string
	MaxPath    int   // 0 means no limit
	MaxContent int64 // 0 means no limit
}

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	MaxPath int
}
