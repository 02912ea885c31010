// Package ls lists buffers with filtering and sorting.
package ls

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/jpl-au/textfinder/internal/format"
	"github.com/jpl-au/textfinder/internal/glob"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/store"
)

// SortField selects the listing order.
type SortField string

const (
	SortName SortField = "name"
	SortTime SortField = "time" // newest first
)

// ParseSort validates a --sort value. Empty means SortName.
func ParseSort(s string) (SortField, error) {
	switch SortField(s) {
	case "", SortName:
		return SortName, nil
	case SortTime:
		return SortTime, nil
	}
	return "", fmt.Errorf("invalid sort %q (valid: name, time)", s)
}

// Options configures a list operation.
type Options struct {
	Prefix      string
	Pattern     string // glob filter applied after the prefix
	IncludeAll  bool   // include deleted buffers
	DeletedOnly bool
	Tree        bool
	Long        bool
	Sort        SortField
	Reverse     bool
}

// Result contains the listed buffers.
type Result struct {
	Documents []store.Document
}

// ToJSON converts the result to its JSON form, without content.
func (r Result) ToJSON() []store.DocJSON {
	out := make([]store.DocJSON, len(r.Documents))
	for i := range r.Documents {
		out[i] = r.Documents[i].ToJSON(false)
	}
	return out
}

// Run lists buffers and writes the formatted listing to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	docs, err := svc.List(ctx, opts.Prefix, opts.IncludeAll || opts.DeletedOnly)
	if err != nil {
		return result, err
	}

	if opts.Pattern != "" || opts.DeletedOnly {
		filtered := docs[:0]
		for _, d := range docs {
			if opts.DeletedOnly && d.DeletedAt == nil {
				continue
			}
			if opts.Pattern != "" {
				ok, err := glob.Match(opts.Pattern, d.Path)
				if err != nil {
					return result, fmt.Errorf("pattern %q: %w", opts.Pattern, err)
				}
				if !ok {
					continue
				}
			}
			filtered = append(filtered, d)
		}
		docs = filtered
	}

	// Ties on time fall back to path so output is stable across runs.
	slices.SortStableFunc(docs, func(a, b store.Document) int {
		c := cmp.Compare(a.Path, b.Path)
		if opts.Sort == SortTime {
			if t := cmp.Compare(b.CreatedAt, a.CreatedAt); t != 0 {
				c = t
			}
		}
		if opts.Reverse {
			return -c
		}
		return c
	})
	result.Documents = docs

	switch {
	case opts.Tree:
		format.Tree(w, docs)
	case opts.Long:
		format.Long(w, docs)
	default:
		format.List(w, docs)
	}
	return result, nil
}
