// restore.go implements the "textfinder restore" command, undoing rm.

package document

import (
	"fmt"
	"io"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <path|key>",
		Short: "Restore a deleted buffer",
		Long:  `Restore a soft-deleted buffer with its full history, by path or version key.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRestore,
	}
}

func (e *Extension) runRestore(c *cobra.Command, args []string) error {
	ctx := c.Context()
	input := args[0]

	p := input
	if doc, err := e.svc.ByKey(ctx, input); err == nil {
		p = doc.Path
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := rm.Restore(ctx, w, e.svc, p)

	log.Event("document:restore", "restore").
		Author(cmd.Author()).
		Path(input).
		Resolved(p).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("restore %q: %w", input, err))
	}
	return cmd.PrintJSON(result)
}
