// import.go implements the "textfinder import" command, copying files
// from disk into buffers.

package document

import (
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/importer"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <dir|file>",
		Short: "Import files as buffers",
		Long: `Import text files from disk. Directories are walked recursively; the
relative path of each file becomes its buffer path.

  textfinder import ./docs --prefix docs
  textfinder import ./src --glob "*.go" --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().String(extension.FlagPrefix, "", "Buffer path prefix")
	c.Flags().StringP(extension.FlagGlob, "g", "", "Only import files matching glob")
	c.Flags().Bool(extension.FlagFlat, false, "Drop directories from buffer paths")
	c.Flags().Bool(extension.FlagIncludeHidden, false, "Include hidden files and directories")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	src := args[0]

	opts := importer.Options{Author: cmd.Author(), Message: cmd.Message()}
	opts.Prefix, _ = c.Flags().GetString(extension.FlagPrefix)
	opts.Pattern, _ = c.Flags().GetString(extension.FlagGlob)
	opts.Flat, _ = c.Flags().GetBool(extension.FlagFlat)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagIncludeHidden)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := importer.Run(ctx, w, e.svc, src, opts)

	log.Event("document:import", "import").
		Author(cmd.Author()).
		Path(opts.Prefix).
		Detail("source", src).
		Detail("dry_run", opts.DryRun).
		Detail("count", result.Imported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}
	return cmd.PrintJSON(result)
}
