// history.go implements the "textfinder history" command. Deleted
// versions are always listed so the history of a removed buffer stays
// inspectable.

package document

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/history"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history <path|key>",
		Short: "Show buffer history",
		Long:  `Display version history for a buffer, newest first.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runHistory,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Limit number of versions shown")
	c.Flags().BoolP(extension.FlagDiff, "d", false, "Show diffs between versions")
	return c
}

func (e *Extension) runHistory(c *cobra.Command, args []string) error {
	ctx := c.Context()
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
	target := args[0]

	if limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", limit))
	}

	opts := history.Options{
		Limit:    limit,
		ShowDiff: showDiff,
		Colour:   term.IsTerminal(int(os.Stdout.Fd())),
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := history.Run(ctx, w, e.svc, target, opts)

	logPath := target
	if len(result.Versions) > 0 {
		logPath = result.Versions[0].Path
	}
	log.Event("document:history", "history").
		Author(cmd.Author()).
		Path(logPath).
		Detail("count", len(result.Versions)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history %q: %w", target, err))
	}

	if cmd.JSON() {
		out := make([]store.DocJSON, len(result.Versions))
		for i := range result.Versions {
			out[i] = result.Versions[i].ToJSON(false)
		}
		return cmd.PrintJSON(out)
	}
	return nil
}
