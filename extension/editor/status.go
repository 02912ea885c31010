// status.go implements "textfinder status".

package editor

import (
	"errors"
	"fmt"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/workspace"
	"github.com/spf13/cobra"
)

type statusJSON struct {
	Active bool       `json:"active"`
	Editor *stateJSON `json:"editor,omitempty"`
	Finder bool       `json:"finder_visible"`
}

func (e *Extension) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active editor",
		Long:  `Show the focused buffer, its selection and view, and whether the finder is open.`,
		Args:  cobra.NoArgs,
		RunE:  e.runStatus,
	}
}

func (e *Extension) runStatus(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	sess, err := e.ws.Active(ctx)
	if errors.Is(err, workspace.ErrNoActiveEditor) {
		log.Event("editor:status", "status").Author(cmd.Author()).Detail("active", false).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(statusJSON{})
		}
		fmt.Fprintln(cmd.Out(), "No active editor")
		return nil
	}
	if err != nil {
		log.Event("editor:status", "status").Author(cmd.Author()).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("status: %w", err))
	}

	fst, err := e.finder.State(ctx)
	log.Event("editor:status", "status").Author(cmd.Author()).Path(sess.Path).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("status: %w", err))
	}

	sel := span.Range{From: sess.Buffer.Anchor(), To: sess.Buffer.Cursor()}
	selected := sess.Buffer.SelectedText()

	if cmd.JSON() {
		st := toJSON(sess.State())
		st.Version = sess.Version
		st.Selected = selected
		return cmd.PrintJSON(statusJSON{Active: true, Editor: &st, Finder: fst.Visible})
	}

	fmt.Fprintf(cmd.Out(), "Editor:    %s (v%d)\n", sess.Path, sess.Version)
	fmt.Fprintf(cmd.Out(), "Selection: %s\n", sel)
	fmt.Fprintf(cmd.Out(), "View:      %s\n", sess.View)
	if selected != "" {
		fmt.Fprintf(cmd.Out(), "Selected:  %q\n", selected)
	}
	if fst.Visible {
		fmt.Fprintf(cmd.Out(), "Finder:    open, query %q\n", fst.Query)
	}
	return nil
}
