// rm.go implements the "textfinder rm" command. Deletion is soft: a
// buffer comes back with restore until vacuum removes it.

package document

import (
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm <path|key>",
		Short: "Delete a buffer",
		Long: `Soft-delete a buffer (recoverable via restore).

Deleting the buffer open in the editor leaves no active editor.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runRm,
	}
	c.Flags().BoolP(extension.FlagRecursive, "r", false, "Delete all buffers under path")
	return c
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	recursive, _ := c.Flags().GetBool(extension.FlagRecursive)
	target := args[0]

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("document:rm", "delete").
		Author(cmd.Author()).
		Path(target).
		Detail("recursive", recursive)

	result, err := rm.Run(ctx, w, e.svc, target, rm.Options{Recursive: recursive})
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", target, err))
	}

	l.Resolved(result.Path).
		Detail("count", len(result.Deleted)).
		Write(nil)

	return cmd.PrintJSON(result)
}
