// Package revert rolls a buffer back by writing an old version's content
// as a new version. History only moves forward, so a revert can itself
// be reverted.
package revert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/store"
)

// ErrVersionRequired is returned when a path is given without a version.
var ErrVersionRequired = errors.New("version required")

// Options configures a revert operation.
type Options struct {
	Author  string
	Message string // default "Revert to vN"
}

// Result contains the outcome of a revert operation.
type Result struct {
	Path       string `json:"path"`
	RevertedTo int    `json:"reverted_to"`
	NewVersion int    `json:"new_version"`
	Key        string `json:"key"`
	Author     string `json:"author"`
	Message    string `json:"message"`
}

// Run reverts target to an earlier version. target is either a path
// (version must be > 0) or a version key (version must be 0).
func Run(ctx context.Context, w io.Writer, svc service.Service, target string, version int, opts Options) (Result, error) {
	var result Result

	var doc *store.Document
	var err error
	if version > 0 {
		doc, err = svc.Version(ctx, target, version)
		if errors.Is(err, store.ErrNotFound) {
			return result, fmt.Errorf("version %d not found for %s: %w", version, target, err)
		}
	} else {
		doc, err = svc.ByKey(ctx, target)
		if errors.Is(err, store.ErrNotFound) {
			return result, fmt.Errorf("%w: textfinder revert %s <version>", ErrVersionRequired, target)
		}
	}
	if err != nil {
		return result, err
	}

	current, err := svc.Latest(ctx, doc.Path, true)
	if err != nil {
		return result, fmt.Errorf("check current state: %w", err)
	}
	if current.DeletedAt != nil {
		return result, fmt.Errorf("%s is deleted (use 'textfinder restore %s' first)", doc.Path, doc.Path)
	}

	msg := opts.Message
	if msg == "" {
		msg = fmt.Sprintf("Revert to v%d", doc.Version)
	}
	v, err := svc.Write(ctx, doc.Path, doc.Content, opts.Author, msg)
	if err != nil {
		return result, fmt.Errorf("write reverted content: %w", err)
	}

	result = Result{
		Path:       doc.Path,
		RevertedTo: doc.Version,
		NewVersion: v,
		Key:        doc.Key,
		Author:     opts.Author,
		Message:    msg,
	}
	fmt.Fprintf(w, "Reverted %s to v%d (now v%d)\n", doc.Path, doc.Version, v)
	return result, nil
}
