// revert.go implements the "textfinder revert" command. Revert moves
// forward: it writes the old content as a new version, so undoing a
// replacement never loses history.

package document

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/revert"
	"github.com/spf13/cobra"
)

func (e *Extension) newRevertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revert <path|key> [version]",
		Short: "Revert a buffer to a previous version",
		Long: `Revert a buffer to a previous version by creating a new version with the old content.

The target can be specified as:
  - A path and version number: textfinder revert notes/todo.txt 3
  - A version key (8-char identifier): textfinder revert abc12345`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runRevert,
	}
}

func (e *Extension) runRevert(c *cobra.Command, args []string) error {
	ctx := c.Context()
	target := args[0]

	version := 0
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("invalid version %q: must be a number", args[1]))
		}
		if v < 1 {
			return cmd.PrintJSONError(fmt.Errorf("version must be >= 1, got %d", v))
		}
		version = v
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := revert.Run(ctx, w, e.svc, target, version, revert.Options{
		Author:  cmd.Author(),
		Message: cmd.Message(),
	})

	log.Event("document:revert", "revert").
		Author(cmd.Author()).
		Path(target).
		Resolved(result.Path).
		Version(version).
		ResultVersion(result.NewVersion).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("revert %q: %w", target, err))
	}
	return cmd.PrintJSON(result)
}
