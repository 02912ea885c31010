// Package vacuum permanently removes soft-deleted buffers. Until vacuum
// runs, a deleted buffer can be restored with its full history.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/textfinder/internal/progress"
	"github.com/jpl-au/textfinder/internal/service"
)

// Options configures vacuum scope.
type Options struct {
	OlderThan *time.Duration // keep deletions newer than this
	Prefix    string
	DryRun    bool
}

// Result reports what was (or would be) removed. Deleted counts rows for
// a real run and buffers for a dry run.
type Result struct {
	Deleted int      `json:"deleted"`
	Paths   []string `json:"paths,omitempty"`
	DryRun  bool     `json:"dry_run,omitempty"`
}

// Run removes soft-deleted buffers, or lists them when DryRun.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	if opts.DryRun {
		return preview(ctx, w, svc, opts)
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	n, err := svc.Vacuum(ctx, opts.OlderThan, opts.Prefix)
	spin.Stop()
	if err != nil {
		return Result{}, err
	}

	if n == 0 {
		fmt.Fprintln(w, "No buffers to vacuum")
	} else {
		fmt.Fprintf(w, "Vacuumed %d row(s)\n", n)
	}
	return Result{Deleted: int(n)}, nil
}

func preview(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{DryRun: true}

	docs, err := svc.List(ctx, opts.Prefix, true)
	if err != nil {
		return result, err
	}

	var cutoff int64
	if opts.OlderThan != nil {
		cutoff = time.Now().Add(-*opts.OlderThan).Unix()
	}
	for _, d := range docs {
		if d.DeletedAt == nil || (opts.OlderThan != nil && *d.DeletedAt >= cutoff) {
			continue
		}
		fmt.Fprintf(w, "Would delete: %s (deleted %s)\n", d.Path, time.Unix(*d.DeletedAt, 0).Format("2006-01-02 15:04"))
		result.Paths = append(result.Paths, d.Path)
	}
	result.Deleted = len(result.Paths)

	if result.Deleted == 0 {
		fmt.Fprintln(w, "No buffers to vacuum")
	} else {
		fmt.Fprintf(w, "\nWould delete %d buffer(s)\n", result.Deleted)
	}
	return result, nil
}
