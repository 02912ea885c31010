// Package glob matches buffer paths against shell-style patterns.
//
// Patterns use path.Match syntax per segment, plus "**" for any number
// of segments (including none). A pattern without a slash also matches
// the last path segment, so "*.txt" finds text buffers at any depth.
package glob

import (
	"path"
	"strings"
)

// Match reports whether p matches pattern. Returns path.ErrBadPattern
// for malformed patterns.
func Match(pattern, p string) (bool, error) {
	pattern = strings.ReplaceAll(pattern, `\`, "/")
	if _, err := path.Match(pattern, ""); err != nil {
		return false, err
	}

	ok, err := segments(strings.Split(pattern, "/"), strings.Split(p, "/"))
	if err != nil || ok {
		return ok, err
	}
	if !strings.Contains(pattern, "/") {
		return path.Match(pattern, path.Base(p))
	}
	return false, nil
}

func segments(pat, parts []string) (bool, error) {
	for len(pat) > 0 {
		if pat[0] == "**" {
			rest := pat[1:]
			for i := 0; i <= len(parts); i++ {
				ok, err := segments(rest, parts[i:])
				if err != nil || ok {
					return ok, err
				}
			}
			return false, nil
		}
		if len(parts) == 0 {
			return false, nil
		}
		ok, err := path.Match(pat[0], parts[0])
		if err != nil || !ok {
			return false, err
		}
		pat, parts = pat[1:], parts[1:]
	}
	return len(parts) == 0, nil
}

// Filter returns the paths matching pattern, preserving order.
func Filter(pattern string, paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		ok, err := Match(pattern, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}
