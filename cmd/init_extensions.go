/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until the
// first command that needs the store runs. The host is opened once and
// shared across all extensions via the Context.

package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/host"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from the bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// authorRequiredCommands lists commands that write buffer versions and have
// no default author of their own.
var authorRequiredCommands = map[string]bool{
	"write":   true,
	"rm":      true,
	"revert":  true,
	"restore": true,
	"import":  true,
	"vacuum":  true,
}

// buildNoStoreCommands creates the set of commands that skip store
// initialisation: the bootstrap commands, which must work before
// "textfinder init", and whatever extensions declare via Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

var (
	extContext extension.Context
	extHost    *host.Host
	initOnce   sync.Once
	initErr    error
)

// ExtensionContext returns the context created by the first command that
// needed the store, or nil.
func ExtensionContext() extension.Context { return extContext }

// NewContext wraps an opened host for extensions.
func NewContext(h *host.Host) extension.Context {
	return extension.NewContext(extension.Deps{
		Service:   h.Service,
		Config:    h.Config,
		Settings:  h.Settings,
		Workspace: h.Workspace,
		Finder:    h.Finder,
	})
}

// initExtensions opens the host and injects it into extensions.
func initExtensions(ctx context.Context) error {
	initOnce.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		h, err := host.Open(ctx, host.Options{DB: DB(), Dir: Dir(), Author: Author()})
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extHost = h
		extContext = NewContext(h)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
