// diff.go implements the "textfinder diff" command for comparing buffer
// versions. With no range it compares the latest version with the one
// before it, which is what a replacement just changed.

package document

import (
	"fmt"
	"os"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/diff"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <path|key>",
		Short: "Show differences between buffer versions",
		Long: `Show differences between buffer versions.

Examples:
  textfinder diff notes/todo.txt          # latest against previous
  textfinder diff notes/todo.txt -v 3:5   # version 3 against version 5`,
		Args: cobra.ExactArgs(1),
		RunE: e.runDiff,
	}
	c.Flags().StringP(extension.FlagVersions, "v", "", "Version range (e.g., 3:5)")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	ctx := c.Context()
	verRange, _ := c.Flags().GetString(extension.FlagVersions)
	target := args[0]

	var v1, v2 int
	if verRange != "" {
		var err error
		if v1, v2, err = diff.ParseVersionRange(verRange); err != nil {
			return cmd.PrintJSONError(err)
		}
	}

	p := target
	if doc, err := e.svc.Resolve(ctx, target); err == nil {
		p = doc.Path
	}

	r, err := e.svc.Diff(ctx, p, v1, v2)

	log.Event("document:diff", "diff").
		Author(cmd.Author()).
		Path(target).
		Resolved(p).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff %q: %w", target, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(r)
	}
	fmt.Fprint(cmd.Out(), r.Format(term.IsTerminal(int(os.Stdout.Fd()))))
	return nil
}
