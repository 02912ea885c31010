// Package history shows the versions of a buffer, optionally as a
// sequence of diffs. Every find-and-replace commit is a version, so this
// is how a user reviews what a replacement changed.
package history

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/internal/format"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/store"
)

// Options configures a history operation.
type Options struct {
	Limit    int  // 0 = all versions
	ShowDiff bool // diff each version against its predecessor
	Colour   bool
}

// Result contains the versions shown, newest first.
type Result struct {
	Versions []store.Document
}

// Run writes the history of a buffer, given by path or key, to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, target string, opts Options) (Result, error) {
	var result Result
	if opts.Limit < 0 {
		return result, fmt.Errorf("limit must be >= 0, got %d", opts.Limit)
	}

	p := target
	if doc, err := svc.Resolve(ctx, target); err == nil {
		p = doc.Path
	}

	limit := opts.Limit
	if opts.ShowDiff && limit > 0 {
		// n diffs need n+1 versions.
		limit++
	}
	docs, err := svc.History(ctx, p, limit)
	if err != nil {
		return result, err
	}
	if len(docs) == 0 {
		return result, fmt.Errorf("no history found for %s: %w", p, store.ErrNotFound)
	}
	result.Versions = docs

	if opts.ShowDiff {
		format.HistoryDiff(w, docs, opts.Colour)
	} else {
		format.History(w, docs)
	}
	return result, nil
}
