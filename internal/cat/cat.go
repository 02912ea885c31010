// Package cat prints buffer content, optionally a line range with line
// numbers. Line numbers match the 1-indexed positions accepted by the
// open, select and cursor commands, so output can be used to pick a
// selection.
package cat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/textfinder/internal/service"
	"github.com/jpl-au/textfinder/internal/store"
)

const minLineNumWidth = 6

// maxLineLength bounds a single scanned line.
const maxLineLength = 10 * 1024 * 1024

// Options configures a cat operation.
type Options struct {
	Version     int  // 0 = latest
	LineNumbers bool // prefix lines with their 1-indexed number
	StartLine   int  // first line shown, 1-indexed (0 = start)
	EndLine     int  // last line shown, 1-indexed (0 = end)
}

// Result contains the outcome of a cat operation.
type Result struct {
	Document *store.Document
}

// Run reads a buffer by path or key and writes its content to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, path string, opts Options) (Result, error) {
	var result Result
	if opts.StartLine < 0 || opts.EndLine < 0 {
		return result, fmt.Errorf("line numbers must be >= 1")
	}
	if opts.EndLine > 0 && opts.StartLine > opts.EndLine {
		return result, fmt.Errorf("start line %d is after end line %d", opts.StartLine, opts.EndLine)
	}

	var doc *store.Document
	var err error
	if opts.Version > 0 {
		doc, err = svc.Version(ctx, path, opts.Version)
	} else {
		doc, err = svc.Resolve(ctx, path)
	}
	if err != nil {
		return result, err
	}
	result.Document = doc

	if opts.StartLine == 0 && opts.EndLine == 0 && !opts.LineNumbers {
		fmt.Fprint(w, doc.Content)
		return result, nil
	}

	trailing := strings.HasSuffix(doc.Content, "\n")
	total := strings.Count(doc.Content, "\n") + 1
	if trailing {
		total--
	}
	start, end := max(opts.StartLine, 1), total
	if opts.EndLine > 0 && opts.EndLine < end {
		end = opts.EndLine
	}
	width := max(len(strconv.Itoa(end)), minLineNumWidth)

	sc := bufio.NewScanner(strings.NewReader(doc.Content))
	sc.Buffer(make([]byte, 64*1024), maxLineLength)
	n := 0
	for sc.Scan() {
		n++
		if n < start {
			continue
		}
		if n > end {
			break
		}
		if opts.LineNumbers {
			fmt.Fprintf(w, "%*d\t%s", width, n, sc.Text())
		} else {
			fmt.Fprint(w, sc.Text())
		}
		if n < end || trailing {
			fmt.Fprintln(w)
		}
	}
	if err := sc.Err(); err != nil {
		return result, fmt.Errorf("reading content: %w", err)
	}
	return result, nil
}
