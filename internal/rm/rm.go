// Package rm soft-deletes and restores buffers. Deleted buffers keep
// their history until vacuum removes them.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/internal/service"
)

// Options configures a delete operation.
type Options struct {
	Recursive bool // delete every buffer under path
}

// Result lists the deleted or restored paths.
type Result struct {
	Path    string   `json:"path"`
	Deleted []string `json:"deleted,omitempty"`
}

// Run soft-deletes a buffer given by path or key, or every buffer under
// path when Recursive. A key deletes the whole buffer it belongs to.
func Run(ctx context.Context, w io.Writer, svc service.Service, path string, opts Options) (Result, error) {
	result := Result{Path: path}

	if !opts.Recursive {
		doc, err := svc.Resolve(ctx, path)
		if err != nil {
			return result, err
		}
		result.Path = doc.Path
		if err := svc.Delete(ctx, doc.Path); err != nil {
			return result, err
		}
		result.Deleted = []string{doc.Path}
		fmt.Fprintf(w, "Deleted %s\n", doc.Path)
		return result, nil
	}

	docs, err := svc.List(ctx, path, false)
	if err != nil {
		return result, err
	}
	for _, d := range docs {
		if err := svc.Delete(ctx, d.Path); err != nil {
			return result, err
		}
		result.Deleted = append(result.Deleted, d.Path)
		fmt.Fprintf(w, "Deleted %s\n", d.Path)
	}
	if len(result.Deleted) == 0 {
		fmt.Fprintf(w, "No buffers found under %s\n", path)
	}
	return result, nil
}

// Restore undoes a soft delete.
func Restore(ctx context.Context, w io.Writer, svc service.Service, path string) (Result, error) {
	result := Result{Path: path}
	if err := svc.Restore(ctx, path); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "Restored %s\n", path)
	return result, nil
}
