// Package path normalises buffer paths before they reach the store.
//
// Rules:
//   - separators are forward slashes, including backslashes typed on Unix
//   - no leading or trailing slashes
//   - no "." or ".." components after cleaning
//   - empty paths are rejected
//
// Unlike filesystem paths, the extension is part of the name: "notes.txt"
// and "notes" are different buffers.
package path

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalid indicates the provided buffer path is invalid.
var ErrInvalid = errors.New("invalid buffer path")

// Normalise cleans and validates a buffer path.
func Normalise(p string) (string, error) {
	if p == "" {
		return "", ErrInvalid
	}

	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	p = strings.Trim(p, "/")

	if p == "" || p == "." || p == ".." || strings.Contains(p, "..") {
		return "", ErrInvalid
	}
	return p, nil
}

// Direct reports whether p is prefix itself or a direct child of it.
//
//	Direct("notes/todo", "notes")     == true
//	Direct("notes/a/todo", "notes")   == false
//	Direct("todo", "")                == true
func Direct(p, prefix string) bool {
	prefix = strings.TrimSuffix(strings.ReplaceAll(prefix, "\\", "/"), "/")
	if p == prefix {
		return true
	}

	rest := p
	if prefix != "" {
		var ok bool
		rest, ok = strings.CutPrefix(p, prefix+"/")
		if !ok {
			return false
		}
	}
	return !strings.Contains(rest, "/")
}
