// cat.go implements the "textfinder cat" command.
//
// Markdown buffers are rendered with glamour on a terminal unless --raw;
// everything else is printed as stored. The -l flag uses colon syntax
// (10:20) matching sed/awk conventions.

package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/textfinder/cmd"
	"github.com/jpl-au/textfinder/extension"
	"github.com/jpl-au/textfinder/internal/cat"
	"github.com/jpl-au/textfinder/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const flagRaw = "raw"

func (e *Extension) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cat <path|key>",
		Short: "Read a buffer",
		Long:  `Output the contents of a buffer to stdout.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runCat,
	}
	c.Flags().IntP(extension.FlagVersion, "v", 0, "Read specific version")
	c.Flags().BoolP(extension.FlagNumber, "n", false, "Number all output lines")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range (e.g., 10:20, 5:, :15)")
	c.Flags().Bool(flagRaw, false, "Never render markdown")
	return c
}

func (e *Extension) runCat(c *cobra.Command, args []string) error {
	ctx := c.Context()
	ver, _ := c.Flags().GetInt(extension.FlagVersion)
	lineNums, _ := c.Flags().GetBool(extension.FlagNumber)
	lineRange, _ := c.Flags().GetString(extension.FlagLines)
	raw, _ := c.Flags().GetBool(flagRaw)

	opts := cat.Options{Version: ver, LineNumbers: lineNums}
	if lineRange != "" {
		start, end, err := parseLineRange(lineRange)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.StartLine = start
		opts.EndLine = end
	}

	p := args[0]
	var result cat.Result
	var err error

	defer func() {
		b := log.Event("document:cat", "read").Author(cmd.Author()).Path(p)
		if result.Document != nil {
			b = b.Resolved(result.Document.Path).Version(result.Document.Version)
		}
		b.Write(err)
	}()

	if cmd.JSON() {
		result, err = cat.Run(ctx, io.Discard, e.svc, p, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", p, err))
		}
		return cmd.PrintJSON(result.Document.ToJSON(true))
	}

	if !raw && !lineNums && term.IsTerminal(int(os.Stdout.Fd())) {
		var buf bytes.Buffer
		result, err = cat.Run(ctx, &buf, e.svc, p, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", p, err))
		}
		if strings.HasSuffix(result.Document.Path, ".md") {
			if rendered, renderErr := glamour.Render(buf.String(), "dark"); renderErr == nil {
				fmt.Fprint(cmd.Out(), rendered)
				return nil
			}
		}
		_, err = buf.WriteTo(cmd.Out())
		return err
	}

	result, err = cat.Run(ctx, cmd.Out(), e.svc, p, opts)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", p, err))
	}
	return nil
}

// parseLineRange parses a line range string like "10:20", "5:", or ":15".
// Returns 1-indexed start and end, where 0 means unspecified.
func parseLineRange(s string) (start, end int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid line range %q: expected format START:END", s)
	}

	if parts[0] != "" {
		if _, err := fmt.Sscanf(parts[0], "%d", &start); err != nil || start < 1 {
			return 0, 0, fmt.Errorf("invalid start line %q", parts[0])
		}
	}
	if parts[1] != "" {
		if _, err := fmt.Sscanf(parts[1], "%d", &end); err != nil || end < 1 {
			return 0, 0, fmt.Errorf("invalid end line %q", parts[1])
		}
	}

	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("start line %d is greater than end line %d", start, end)
	}
	return start, end, nil
}
