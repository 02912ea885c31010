// findreplace.go implements the find-and-replace-in-selection command.
//
// With no active editor the command is a silent no-op that exits 0. A
// regex that does not compile still commits the literal pass and prints
// a notice on stderr.

package replace

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/findreplace"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newFindReplaceCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   findreplace.Command,
		Short: "Replace text in the selection using the stored settings",
		Long: `Replace text in the active editor's selection, or the cursor line when
nothing is selected.

Two passes run in order over the same text:
  1. every occurrence of findText becomes replace (literal)
  2. findRegexp with regexpFlags is replaced with replace ($1, $<name>, $&)

Configure them with "textfinder settings". See "textfinder guide replace".`,
		Args: cobra.NoArgs,
		RunE: e.runFindReplace,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show the change without committing")
	c.Flags().BoolP(extension.FlagDiff, "d", false, "Show a diff of the change")
	return c
}

func (e *Extension) runFindReplace(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	s := e.settings.Current()
	result, err := findreplace.Run(ctx, w, e.ws, s, findreplace.Options{
		Author:  cmd.Author(),
		Message: cmd.Message(),
		DryRun:  dryRun,
		Diff:    showDiff,
		Colour:  !cmd.JSON() && term.IsTerminal(int(os.Stdout.Fd())),
	})

	log.Event("replace:find_replace", "replace").
		Author(cmd.Author()).
		Path(result.Path).
		ResultVersion(result.Version).
		Detail("skipped", result.Skipped).
		Detail("changed", result.Changed).
		Detail("dry_run", dryRun).
		Detail("notice", result.Notice).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("%s: %w", findreplace.Command, err))
	}
	if result.Notice != "" && !cmd.JSON() {
		fmt.Fprintf(cmd.Err(), "notice: %s\n", result.Notice)
	}
	return cmd.PrintJSON(result)
}
