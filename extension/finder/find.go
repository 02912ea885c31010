// find.go implements the "textfinder find" command group. Each
// subcommand is one interaction with the overlay; state carries over
// between invocations.

package finder

import (
	"fmt"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/finder"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newFindCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "find",
		Short: "Drive the search overlay",
		Long: `Incremental search over the active editor.

  textfinder find show [query]
  textfinder find search <query>
  textfinder find next | prev
  textfinder find replace [text] | replace-all [text]
  textfinder find toggle-regex | toggle-case
  textfinder find key <chord>          # enter, shift+enter, escape, ctrl+enter ...
  textfinder find status | hide

See "textfinder guide find".`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	sub := []struct {
		action string
		use    string
		short  string
		args   cobra.PositionalArgs
	}{
		{finder.ActionShow, "show [query]", "Open the finder", cobra.MaximumNArgs(1)},
		{finder.ActionSearch, "search <query>", "Change the query", cobra.ExactArgs(1)},
		{finder.ActionNext, "next", "Go to the next match", cobra.NoArgs},
		{finder.ActionPrev, "prev", "Go to the previous match", cobra.NoArgs},
		{finder.ActionReplace, "replace [text]", "Replace the current match", cobra.MaximumNArgs(1)},
		{finder.ActionReplaceAll, "replace-all [text]", "Replace every match", cobra.MaximumNArgs(1)},
		{finder.ActionRegex, "toggle-regex", "Toggle regular expression mode", cobra.NoArgs},
		{finder.ActionCase, "toggle-case", "Toggle case-sensitive matching", cobra.NoArgs},
		{"key", "key <chord>", "Press a key inside the finder", cobra.ExactArgs(1)},
		{"status", "status", "Show the finder state", cobra.NoArgs},
		{finder.ActionHide, "hide", "Close the finder", cobra.NoArgs},
	}
	for _, s := range sub {
		c.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			Args:  s.args,
			RunE:  e.run(s.action),
		})
	}
	return c
}

func (e *Extension) run(action string) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		var arg *string
		if len(args) > 0 {
			arg = &args[0]
		}

		st, err := dispatch(c.Context(), e.overlay, action, arg)

		log.Event("finder:"+action, action).
			Author(cmd.Author()).
			Path(st.Path).
			Detail("query", st.Query).
			Detail("total", st.Total).
			Detail("replaced", st.Replaced).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("find %s: %w", action, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(st)
		}
		printStatus(cmd.Out(), st)
		return nil
	}
}
