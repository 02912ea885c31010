// export.go implements the "textfinder export" command, writing buffers
// back to disk.

package document

import (
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/exporter"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <path|key|prefix/> <dest>",
		Short: "Export buffers to files",
		Long: `Write a buffer, or every buffer under a prefix ending in "/", to disk.
Existing files are kept unless --force.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runExport,
	}
	c.Flags().IntP(extension.FlagVersion, "v", 0, "Export a specific version")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	target, dst := args[0], args[1]
	version, _ := c.Flags().GetInt(extension.FlagVersion)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(ctx, w, e.svc, target, dst, exporter.Options{Version: version, Force: cmd.Force()})

	log.Event("document:export", "export").
		Author(cmd.Author()).
		Path(target).
		Detail("dest", dst).
		Detail("count", result.Exported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export %q: %w", target, err))
	}
	return cmd.PrintJSON(result)
}
