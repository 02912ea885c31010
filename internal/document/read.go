package document

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/jpl-au/textfinder/internal/diff"
	norm "github.com/jpl-au/textfinder/internal/path"
	"github.com/jpl-au/textfinder/internal/store"
)

// Latest retrieves the latest version of a buffer.
func (s *Service) Latest(ctx context.Context, p string, includeDeleted bool) (*store.Document, error) {
	p, err := norm.Normalise(p)
	if err != nil {
		return nil, err
	}
	return s.store.Latest(ctx, p, includeDeleted)
}

// Version retrieves a specific version of a buffer.
func (s *Service) Version(ctx context.Context, p string, ver int) (*store.Document, error) {
	p, err := norm.Normalise(p)
	if err != nil {
		return nil, err
	}
	return s.store.Version(ctx, p, ver)
}

// Resolve returns a buffer by path or by 8-character key. When an input
// could be either, the path wins: a buffer someone created at "todolist"
// is meant over a version key that happens to match.
func (s *Service) Resolve(ctx context.Context, pathOrKey string) (*store.Document, error) {
	if len(pathOrKey) != 8 {
		return s.Latest(ctx, pathOrKey, false)
	}

	var (
		pathDoc, keyDoc *store.Document
		pathErr, keyErr error
		wg              sync.WaitGroup
	)
	wg.Go(func() { pathDoc, pathErr = s.Latest(ctx, pathOrKey, false) })
	wg.Go(func() { keyDoc, keyErr = s.store.ByKey(ctx, pathOrKey) })
	wg.Wait()

	if pathErr == nil {
		return pathDoc, nil
	}
	if keyErr == nil {
		return keyDoc, nil
	}
	return nil, pathErr
}

// List returns the latest version of each buffer under prefix.
func (s *Service) List(ctx context.Context, prefix string, includeDeleted bool) ([]store.Document, error) {
	prefix, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, prefix, includeDeleted)
}

// History returns versions of a buffer newest first.
func (s *Service) History(ctx context.Context, p string, limit int) ([]store.Document, error) {
	p, err := norm.Normalise(p)
	if err != nil {
		return nil, err
	}
	return s.store.History(ctx, p, limit)
}

// Exists reports whether an active buffer exists at p.
func (s *Service) Exists(ctx context.Context, p string) (bool, error) {
	p, err := norm.Normalise(p)
	if err != nil {
		return false, err
	}
	return s.store.Exists(ctx, p)
}

// Diff compares two versions of a buffer. With v1 and v2 both zero it
// compares the latest version against the one before it.
func (s *Service) Diff(ctx context.Context, p string, v1, v2 int) (diff.Result, error) {
	p, err := norm.Normalise(p)
	if err != nil {
		return diff.Result{}, err
	}

	if v1 == 0 && v2 == 0 {
		docs, err := s.store.History(ctx, p, 2)
		if err != nil {
			return diff.Result{}, err
		}
		switch len(docs) {
		case 0:
			return diff.Result{}, store.ErrNotFound
		case 1:
			return diff.Result{}, fmt.Errorf("only one version exists for %s", p)
		}
		return diff.Compute(docs[1].Content, docs[0].Content, label(p, docs[1].Version), label(p, docs[0].Version)), nil
	}

	var (
		d1, d2     *store.Document
		err1, err2 error
		wg         sync.WaitGroup
	)
	wg.Go(func() { d1, err1 = s.store.Version(ctx, p, v1) })
	wg.Go(func() { d2, err2 = s.store.Version(ctx, p, v2) })
	wg.Wait()

	if err1 != nil {
		return diff.Result{}, fmt.Errorf("reading %s v%d: %w", p, v1, err1)
	}
	if err2 != nil {
		return diff.Result{}, fmt.Errorf("reading %s v%d: %w", p, v2, err2)
	}
	return diff.Compute(d1.Content, d2.Content, label(p, v1), label(p, v2)), nil
}

func label(p string, v int) string {
	return p + " v" + strconv.Itoa(v)
}

// ByKey returns the buffer version with the given 8-character key.
func (s *Service) ByKey(ctx context.Context, key string) (*store.Document, error) {
	return s.store.ByKey(ctx, key)
}
