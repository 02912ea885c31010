// cursor.go implements the select, cursor and view commands, which edit
// the focused editor without touching its text.

package editor

import (
	"fmt"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/spf13/cobra"
)

func (e *Extension) newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <line:col-line:col>",
		Short: "Set the selection",
		Long: `Set the selection of the active editor. The first position is the
anchor and the second the head, so a reversed range selects backwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			r, err := workspace.ParseRange(args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			st, err := e.ws.Select(c.Context(), r)
			return e.report(st, err, "select", args[0])
		},
	}
}

func (e *Extension) newCursorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cursor <line[:col]>",
		Short: "Move the cursor",
		Long:  `Move the cursor of the active editor, collapsing the selection.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, err := workspace.ParsePosition(args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			st, err := e.ws.MoveCursor(c.Context(), p)
			return e.report(st, err, "cursor", args[0])
		},
	}
}

func (e *Extension) newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "view <source|preview>",
		Short:     "Switch the view mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(workspace.ViewSource), string(workspace.ViewPreview)},
		RunE: func(c *cobra.Command, args []string) error {
			v, err := workspace.ParseView(args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			st, err := e.ws.SetView(c.Context(), v)
			return e.report(st, err, "view", args[0])
		},
	}
}

func (e *Extension) report(st workspace.State, err error, action, arg string) error {
	log.Event("editor:"+action, action).
		Author(cmd.Author()).
		Path(st.Path).
		Detail("arg", arg).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("%s: %w", action, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(toJSON(st))
	}
	fmt.Fprintf(cmd.Out(), "%s %s (%s)\n", st.Path, st.Selection(), st.View)
	return nil
}
