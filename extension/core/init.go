// init.go implements the "textfinder init" command.
//
// Init runs before a store exists. It creates the database only; config
// and settings are created on first write by their own commands.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/document"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/repo"
	"github.com/spf13/cobra"
)

type initResult struct {
	Path string `json:"path"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise a new textfinder store",
		Long: `Creates a .textfinder/textfinder.db database in the current directory.

Use --db to create additional databases:
  textfinder init --db scratch    # creates .textfinder/textfinder-scratch.db

Use --dir to create in a different directory:
  textfinder init --dir /path/to/project

Use --force to replace an existing database. The settings file is kept.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	db, dir := cmd.DB(), cmd.Dir()

	err := document.Init(cmd.Force(), db, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if cmd.JSON() {
		return cmd.PrintJSON(initResult{Path: loc})
	}
	fmt.Fprintf(cmd.Out(), "Initialised textfinder store in %s\n", loc)
	return nil
}
