// open.go implements "textfinder open" and "textfinder close".

package editor

import (
	"errors"
	"fmt"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/spf13/cobra"
)

func (e *Extension) newOpenCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "open <path>",
		Short: "Make a buffer the active editor",
		Long: `Focus a buffer. Positions are 1-indexed line:col and are clamped into
the buffer; --select wins over --cursor.

  textfinder open notes/todo.txt
  textfinder open notes/todo.txt --cursor 3:5
  textfinder open notes/todo.txt --select 2:1-4:1 --view preview`,
		Args: cobra.ExactArgs(1),
		RunE: e.runOpen,
	}
	c.Flags().String(extension.FlagCursor, "", "Cursor position (line:col)")
	c.Flags().String(extension.FlagSelect, "", "Selection (line:col-line:col)")
	c.Flags().String(extension.FlagView, "", "View mode: source or preview")
	return c
}

func (e *Extension) runOpen(c *cobra.Command, args []string) error {
	ctx := c.Context()
	p := args[0]
	cursor, _ := c.Flags().GetString(extension.FlagCursor)
	sel, _ := c.Flags().GetString(extension.FlagSelect)
	view, _ := c.Flags().GetString(extension.FlagView)

	var opts workspace.OpenOptions
	if cursor != "" {
		pos, err := workspace.ParsePosition(cursor)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Cursor = &pos
	}
	if sel != "" {
		r, err := workspace.ParseRange(sel)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Selection = &r
	}
	if view != "" {
		v, err := workspace.ParseView(view)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.View = v
	}

	st, err := e.ws.Open(ctx, p, opts)

	log.Event("editor:open", "open").
		Author(cmd.Author()).
		Path(p).
		Resolved(st.Path).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open %q: %w", p, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(toJSON(st))
	}
	fmt.Fprintf(cmd.Out(), "Opened %s at %s\n", st.Path, st.Head)
	return nil
}

func (e *Extension) newCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the active editor",
		Long:  `Hide the finder, restoring any view it switched, and close the active editor.`,
		Args:  cobra.NoArgs,
		RunE:  e.runClose,
	}
}

func (e *Extension) runClose(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	err := errors.Join(e.finder.Teardown(ctx), e.ws.Close(ctx))

	log.Event("editor:close", "close").
		Author(cmd.Author()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("close: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]bool{"closed": true})
	}
	fmt.Fprintln(cmd.Out(), "Closed")
	return nil
}
