// vacuum.go implements the "textfinder vacuum" command for permanent
// deletion of soft-deleted buffers. It is irreversible, so it asks for
// confirmation unless --force or --dry-run is given.

package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/duration"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/jpl-au/textfinder/internal/vacuum"
	"github.com/spf13/cobra"
)

func (e *Extension) newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Permanently delete soft-deleted buffers",
		Long: `Permanently delete soft-deleted buffers and all their versions.

This is irreversible. Use --force to skip confirmation.

Duration formats: 12h (hours), 7d (days), 4w (weeks), 3m (months)`,
		Args: cobra.NoArgs,
		RunE: e.runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Only purge deletions older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().StringP(extension.FlagPath, "p", "", "Only purge specific path prefix")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	return c
}

func (e *Extension) runVacuum(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	prefix, _ := c.Flags().GetString(extension.FlagPath)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := vacuum.Options{Prefix: prefix, DryRun: dryRun}
	if olderThan != "" {
		d, err := duration.Parse(olderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
		}
		opts.OlderThan = &d
	}

	if !dryRun && !cmd.Force() {
		ok, err := confirm(os.Stdin, "Permanently delete soft-deleted buffers? This cannot be undone. [y/N] ")
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		if !ok {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := vacuum.Run(ctx, w, e.svc, opts)

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Path(prefix).
		Detail("dry_run", dryRun).
		Detail("count", result.Deleted).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(result)
}

func confirm(r io.Reader, prompt string) (bool, error) {
	fmt.Fprint(cmd.Err(), prompt)
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
