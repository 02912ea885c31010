// Package host opens everything an editor command runs against: the
// buffer store, the CLI config, the plugin settings manager, the
// workspace and the finder overlay. The CLI opens one Host per process;
// the MCP server keeps one open for its lifetime.
package host

import (
	"context"
	"errors"

	"github.com/jpl-au/textfinder/internal/config"
	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/finder"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/settings"
	"github.com/jpl-au/textfinder/internal/workspace"
)

// Options selects the database and attribution.
type Options struct {
	DB     string // database name, "" for the default
	Dir    string // project directory, "" to discover
	Author string
}

// Host holds the opened services.
type Host struct {
	Service   *document.Service
	Config    *config.Config
	Settings  *settings.Manager
	Workspace *workspace.Workspace
	Finder    *finder.Overlay
}

// Open opens the store and loads settings. A settings file that cannot
// be read is logged and the defaults are used, so a corrupt data.json
// never blocks the editor.
func Open(ctx context.Context, opts Options) (*Host, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	svc, err := document.NewIn(opts.Dir, opts.DB)
	if err != nil {
		return nil, err
	}
	log.SetProject(svc.Dir())

	p := SettingsFile(cfg, svc.Dir())
	mgr, err := settings.NewManager(ctx, settings.NewFileStore(p),
		settings.WithErrorHandler(func(err error) {
			log.Event("settings", "flush").Author(opts.Author).Path(p).Write(err)
		}))
	if err != nil {
		log.Event("settings", "load").Author(opts.Author).Path(p).Write(err)
	}

	ws := workspace.New(svc, svc.KV())
	return &Host{
		Service:   svc,
		Config:    cfg,
		Settings:  mgr,
		Workspace: ws,
		Finder:    finder.New(ws, svc.KV(), mgr, finder.WithAuthor(opts.Author)),
	}, nil
}

// SettingsFile returns the settings path: the configured override, or
// data.json beside the database.
func SettingsFile(cfg *config.Config, repoDir string) string {
	if p := cfg.SettingsPath(); p != "" {
		return p
	}
	return settings.FilePath(repoDir)
}

// Close flushes pending settings and closes the store.
func (h *Host) Close() error {
	return errors.Join(h.Settings.Close(), h.Service.Close())
}
