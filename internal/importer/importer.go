// Package importer loads text files from disk into the store so they can
// be opened and edited. Directory imports walk the tree through os.Root,
// which keeps symlinks from escaping the source directory.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/textfinder/internal/glob"
	"github.com/jpl-au/textfinder/internal/progress"
	"github.com/jpl-au/textfinder/internal/service"
)

// Options configures an import operation.
type Options struct {
	Prefix  string // buffer path prefix
	Pattern string // glob filter on relative paths (default all files)
	Flat    bool   // drop directories from buffer paths
	Hidden  bool   // include dot files and directories
	DryRun  bool
	Author  string
	Message string
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported int      `json:"imported"`
	Paths    []string `json:"paths"`
	Skipped  []string `json:"skipped,omitempty"` // files that are not UTF-8 text
}

// Run imports src, a file or a directory.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	info, err := os.Stat(src)
	if err != nil {
		return Result{}, err
	}
	if !info.IsDir() {
		return importFile(ctx, w, svc, src, opts)
	}

	root, err := os.OpenRoot(src)
	if err != nil {
		return Result{}, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	files, err := scan(root, ".", opts)
	if err != nil {
		return Result{}, fmt.Errorf("scanning %s: %w", src, err)
	}

	var result Result
	prog := progress.New("Importing", len(files))
	defer prog.Done()

	for _, rel := range files {
		docPath := docPath(rel, opts)
		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s -> %s\n", filepath.Join(src, rel), docPath)
			result.Paths = append(result.Paths, docPath)
			prog.Increment()
			continue
		}

		data, err := root.ReadFile(rel)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", rel, err)
		}
		if err := store(ctx, w, svc, &result, filepath.Join(src, rel), docPath, data, opts); err != nil {
			return result, err
		}
		prog.Increment()
	}
	return result, nil
}

func importFile(ctx context.Context, w io.Writer, svc service.Service, file string, opts Options) (Result, error) {
	var result Result
	docPath := docPath(filepath.Base(file), opts)
	if opts.DryRun {
		fmt.Fprintf(w, "Would import: %s -> %s\n", file, docPath)
		result.Paths = []string{docPath}
		return result, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", file, err)
	}
	return result, store(ctx, w, svc, &result, file, docPath, data, opts)
}

func store(ctx context.Context, w io.Writer, svc service.Service, result *Result, file, docPath string, data []byte, opts Options) error {
	if !utf8.Valid(data) {
		fmt.Fprintf(w, "Skipped: %s (not UTF-8 text)\n", file)
		result.Skipped = append(result.Skipped, file)
		return nil
	}
	if _, err := svc.Write(ctx, docPath, string(data), opts.Author, opts.Message); err != nil {
		return fmt.Errorf("writing %s: %w", docPath, err)
	}
	fmt.Fprintf(w, "Imported: %s -> %s\n", file, docPath)
	result.Imported++
	result.Paths = append(result.Paths, docPath)
	return nil
}

// scan returns the regular files under dir, relative to the root.
func scan(root *os.Root, dir string, opts Options) ([]string, error) {
	f, err := root.Open(dir)
	if err != nil {
		return nil, err
	}
	entries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !opts.Hidden && strings.HasPrefix(name, ".") {
			continue
		}
		rel := filepath.Join(dir, name)
		switch {
		case e.IsDir():
			sub, err := scan(root, rel, opts)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		case e.Type().IsRegular():
			if opts.Pattern != "" {
				ok, err := glob.Match(opts.Pattern, filepath.ToSlash(rel))
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
			}
			files = append(files, rel)
		}
	}
	return files, nil
}

func docPath(rel string, opts Options) string {
	p := filepath.ToSlash(rel)
	if opts.Flat {
		p = path.Base(p)
	}
	if opts.Prefix != "" {
		p = strings.TrimSuffix(opts.Prefix, "/") + "/" + p
	}
	return p
}
