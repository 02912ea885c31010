// settings.go implements the "textfinder settings" panel. Each field is
// bound to its JSON key; a set is saved before the command returns.

package replace

import (
	"context"
	"fmt"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/settings"
	"github.com/spf13/cobra"
)

type fieldJSON struct {
	settings.Field
	Value string `json:"value"`
}

func (e *Extension) newSettingsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "settings [key] [value]",
		Short: "View or change find and replace settings",
		Long: `View or change the settings used by find-and-replace-in-selection and
the finder.

  textfinder settings                    # list every field
  textfinder settings findRegexp         # show one value
  textfinder settings findRegexp '(\w+)' # set and save
  textfinder settings reset              # restore defaults

Text fields take any value; toggles take true or false.`,
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: settings.ValidKeys(),
		RunE:      e.runSettings,
	}
	c.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		Args:  cobra.NoArgs,
		RunE:  e.runSettingsReset,
	})
	return c
}

func (e *Extension) runSettings(c *cobra.Command, args []string) error {
	ctx := c.Context()

	switch len(args) {
	case 0:
		s := e.settings.Current()
		log.Event("replace:settings", "list").Author(cmd.Author()).Write(nil)
		out := make([]fieldJSON, 0, len(settings.Fields()))
		for _, f := range settings.Fields() {
			v, _ := s.Get(f.Key)
			out = append(out, fieldJSON{Field: f, Value: v})
		}
		if cmd.JSON() {
			return cmd.PrintJSON(out)
		}
		for _, f := range out {
			fmt.Fprintf(cmd.Out(), "%-24s %-7s %q\n", f.Key, f.Kind, f.Value)
		}
		return nil

	case 1:
		v, err := e.settings.Current().Get(args[0])
		log.Event("replace:settings", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("settings get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)
		return nil
	}

	key, value := args[0], args[1]
	err := e.settings.Set(key, value)
	log.Event("replace:settings", "set").Author(cmd.Author()).Detail("key", key).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("settings set %q: %w", key, err))
	}
	e.flush(ctx)
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{key: value})
	}
	fmt.Fprintf(cmd.Out(), "%s = %q\n", key, value)
	return nil
}

func (e *Extension) runSettingsReset(c *cobra.Command, _ []string) error {
	e.settings.Reset()
	log.Event("replace:settings", "reset").Author(cmd.Author()).Write(nil)
	e.flush(c.Context())
	if cmd.JSON() {
		return cmd.PrintJSON(e.settings.Current().All())
	}
	fmt.Fprintln(cmd.Out(), "Settings restored to defaults")
	return nil
}

// flush saves now so the change is on disk before the process exits. A
// failed save is logged and reported as a warning; the in-memory change
// stands and Close retries it.
func (e *Extension) flush(ctx context.Context) {
	if err := e.settings.Flush(ctx); err != nil {
		log.Event("replace:settings", "flush").Author(cmd.Author()).Write(err)
		fmt.Fprintf(cmd.Err(), "warning: saving settings: %v\n", err)
	}
}
