// context.go defines the Context interface through which extensions reach
// the shared services.
//
// Extensions receive Context during Init(), not at construction, because
// they register in init() before any store or settings file is open.

package extension

import (
	"database/sql"

	"github.com/jpl-au/textfinder/internal/config"
	"github.com/jpl-au/textfinder/internal/finder"
	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/settings"
	"github.com/jpl-au/textfinder/internal/workspace"
)

// Context provides extensions controlled access to textfinder internals.
type Context interface {
	// Service returns the buffer service.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	DB() *sql.DB

	// Config returns the loaded CLI configuration.
	Config() *config.Config

	// Settings returns the plugin settings manager. Mutations persist in
	// the background; callers never hold it across operations.
	Settings() *settings.Manager

	// Workspace returns the active editor state.
	Workspace() *workspace.Workspace

	// Finder returns the search overlay bound to the workspace.
	Finder() *finder.Overlay
}

// Deps bundles what NewContext wires together.
type Deps struct {
	Service   service.Service
	Config    *config.Config
	Settings  *settings.Manager
	Workspace *workspace.Workspace
	Finder    *finder.Overlay
}

type extContext struct {
	d Deps
}

// NewContext creates a new extension context.
func NewContext(d Deps) Context {
	return &extContext{d: d}
}

func (c *extContext) Service() service.Service { return c.d.Service }

func (c *extContext) DB() *sql.DB {
	if c.d.Service == nil {
		return nil
	}
	return c.d.Service.DB()
}

func (c *extContext) Config() *config.Config { return c.d.Config }

func (c *extContext) Settings() *settings.Manager { return c.d.Settings }

func (c *extContext) Workspace() *workspace.Workspace { return c.d.Workspace }

func (c *extContext) Finder() *finder.Overlay { return c.d.Finder }
