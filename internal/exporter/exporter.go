// Package exporter writes buffers back to disk, the counterpart of
// importer. Files are created through os.Root so buffer paths cannot
// escape the destination directory.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jpl-au/textfinder/internal/progress"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/store"
)

// ErrFileExists is returned when a destination exists and Force is off.
var ErrFileExists = errors.New("file exists (use --force to overwrite)")

// Options configures an export operation.
type Options struct {
	Version int  // 0 = latest; single buffer only
	Force   bool // overwrite existing files
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      `json:"exported"`
	Paths    []string `json:"paths"`
}

// Run exports one buffer (by path or key) to dst, or every buffer under
// a prefix when target ends with "/". A dst that is an existing directory
// receives the buffer under its base name.
func Run(ctx context.Context, w io.Writer, svc service.Service, target, dst string, opts Options) (Result, error) {
	if strings.HasSuffix(target, "/") {
		if opts.Version > 0 {
			return Result{}, fmt.Errorf("--version applies to a single buffer")
		}
		return exportPrefix(ctx, w, svc, strings.TrimSuffix(target, "/"), dst, opts)
	}
	return exportOne(ctx, w, svc, target, dst, opts)
}

func exportOne(ctx context.Context, w io.Writer, svc service.Service, target, dst string, opts Options) (Result, error) {
	var result Result

	doc, err := svc.Resolve(ctx, target)
	if err != nil {
		return result, err
	}
	if opts.Version > 0 {
		if doc, err = svc.Version(ctx, doc.Path, opts.Version); err != nil {
			return result, err
		}
	}

	out := dst
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		out = filepath.Join(dst, path.Base(doc.Path))
	}
	dir, name := filepath.Split(out)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("creating directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return result, fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if err := writeFile(root, name, doc.Content, opts.Force); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "Exported: %s -> %s\n", doc.Path, out)
	return Result{Exported: 1, Paths: []string{out}}, nil
}

func exportPrefix(ctx context.Context, w io.Writer, svc service.Service, prefix, dst string, opts Options) (Result, error) {
	var result Result

	docs, err := svc.List(ctx, prefix, false)
	if err != nil {
		return result, err
	}
	if len(docs) == 0 {
		return result, fmt.Errorf("no buffers under %q: %w", prefix, store.ErrNotFound)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return result, fmt.Errorf("creating destination: %w", err)
	}
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	prog := progress.New("Exporting", len(docs))
	defer prog.Done()

	for _, d := range docs {
		rel := strings.TrimPrefix(strings.TrimPrefix(d.Path, prefix), "/")
		if rel == "" {
			rel = path.Base(d.Path)
		}
		if err := writeFile(root, filepath.FromSlash(rel), d.Content, opts.Force); err != nil {
			return result, err
		}
		out := filepath.Join(dst, filepath.FromSlash(rel))
		fmt.Fprintf(w, "Exported: %s -> %s\n", d.Path, out)
		result.Paths = append(result.Paths, out)
		result.Exported++
		prog.Increment()
	}
	return result, nil
}

func writeFile(root *os.Root, name, content string, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("%s: %w", name, ErrFileExists)
		}
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := root.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := root.WriteFile(name, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
