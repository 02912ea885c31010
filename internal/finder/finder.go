// Package finder implements the incremental search overlay.
//
// The overlay has no widget of its own: its state (visibility, query,
// replace text, toggles, current match) lives in the store's kv table so
// that consecutive CLI invocations and MCP calls drive the same overlay.
// Every operation loads the state, acts on the focused buffer through the
// workspace, and saves the state again. Settings are read as a snapshot at
// the start of each operation and never held.
package finder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jpl-au/textfinder/internal/settings"
	"github.com/jpl-au/textfinder/internal/store"
	"github.com/jpl-au/textfinder/internal/workspace"
)

var (
	// ErrNotVisible is returned by operations that need the overlay shown.
	ErrNotVisible = errors.New("finder is not visible (run 'textfinder find show')")
	// ErrUnknownKey is returned by Key for a key it does not handle.
	ErrUnknownKey = errors.New("unknown key")
)

// stateKey is the kv key holding the overlay state.
const stateKey = "finder.overlay"

// DefaultMessage is the version message for finder replacements.
const DefaultMessage = "finder replace"

// Workspace is the part of the workspace the overlay drives.
type Workspace interface {
	Active(ctx context.Context) (*workspace.Session, error)
	State(ctx context.Context) (workspace.State, error)
	SetView(ctx context.Context, v workspace.View) (workspace.State, error)
}

// SettingsSource yields the current settings. *settings.Manager satisfies it.
type SettingsSource interface {
	Current() settings.Settings
}

// State is the persisted overlay state.
type State struct {
	Visible   bool           `json:"visible"`
	Delegated bool           `json:"delegated,omitempty"`
	Query     string         `json:"query"`
	Replace   string         `json:"replace"`
	Regex     bool           `json:"regex"`
	MatchCase bool           `json:"matchCase"`
	Current   int            `json:"current"`
	PrevView  workspace.View `json:"prevView,omitempty"`
}

// Overlay drives the finder over the focused buffer.
type Overlay struct {
	ws       Workspace
	kv       store.KV
	settings SettingsSource
	author   string
}

// Option configures an Overlay.
type Option func(*Overlay)

// DefaultAuthor is recorded on overlay versions when no author is set.
const DefaultAuthor = "finder"

// WithAuthor sets the author recorded on versions the overlay writes. An
// empty author keeps DefaultAuthor.
func WithAuthor(author string) Option {
	return func(o *Overlay) {
		if author != "" {
			o.author = author
		}
	}
}

// New returns an overlay over ws, keeping its state in kv.
func New(ws Workspace, kv store.KV, s SettingsSource, opts ...Option) *Overlay {
	o := &Overlay{ws: ws, kv: kv, settings: s, author: DefaultAuthor}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the persisted overlay state.
func (o *Overlay) State(ctx context.Context) (State, error) {
	data, err := o.kv.Get(ctx, stateKey)
	if errors.Is(err, store.ErrNotFound) {
		return State{Current: -1}, nil
	}
	if err != nil {
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode finder state: %w", err)
	}
	return st, nil
}

func (o *Overlay) save(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode finder state: %w", err)
	}
	return o.kv.Put(ctx, stateKey, data)
}

// Teardown releases the overlay when its host goes away: a forced source
// view is restored and the overlay is hidden, keeping the query for the
// next Show. It is safe to call when the overlay was never shown.
func (o *Overlay) Teardown(ctx context.Context) error {
	st, err := o.State(ctx)
	if err != nil {
		return err
	}
	if !st.Visible && !st.Delegated && st.PrevView == "" {
		return nil
	}
	if err := o.restoreView(ctx, &st); err != nil && !errors.Is(err, workspace.ErrNoActiveEditor) {
		return err
	}
	st.Visible = false
	st.Delegated = false
	return o.save(ctx, st)
}

func (o *Overlay) restoreView(ctx context.Context, st *State) error {
	if st.PrevView == "" {
		return nil
	}
	prev := st.PrevView
	st.PrevView = ""
	_, err := o.ws.SetView(ctx, prev)
	return err
}
