// Package format renders store documents for the terminal: listings,
// trees and version history. Commands compute results, this package
// only lays them out.
package format

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jpl-au/textfinder/internal/diff"
	"github.com/jpl-au/textfinder/internal/store"
)

// humanSize formats a byte count, e.g. "1.2K".
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func deletedSuffix(d store.Document) string {
	if d.DeletedAt != nil {
		return " [deleted]"
	}
	return ""
}

func author(d store.Document) string {
	if d.Author == "" {
		return "-"
	}
	return d.Author
}

// List prints one "key  path" line per document.
func List(w io.Writer, docs []store.Document) {
	for _, d := range docs {
		fmt.Fprintf(w, "%s  %s%s\n", d.Key, d.Path, deletedSuffix(d))
	}
}

// Long prints a table of VER, KEY, SIZE, UPDATED, AUTHOR and PATH.
// Fixed-width columns come first so variable ones don't break alignment.
func Long(w io.Writer, docs []store.Document) {
	if len(docs) == 0 {
		return
	}
	width := len("AUTHOR")
	for _, d := range docs {
		width = max(width, len(author(d)))
	}

	fmt.Fprintf(w, "%4s  %-8s  %6s  %-16s  %-*s  %s\n", "VER", "KEY", "SIZE", "UPDATED", width, "AUTHOR", "PATH")
	for _, d := range docs {
		updated := time.Unix(d.CreatedAt, 0).Format("2006-01-02 15:04")
		fmt.Fprintf(w, "%4d  %s  %6s  %s  %-*s  %s%s\n",
			d.Version, d.Key, humanSize(int64(len(d.Content))), updated, width, author(d), d.Path, deletedSuffix(d))
	}
}

// Tree prints documents as a directory tree.
func Tree(w io.Writer, docs []store.Document) {
	type node struct {
		children map[string]*node
		doc      bool
		deleted  bool
	}
	newNode := func() *node { return &node{children: make(map[string]*node)} }

	root := newNode()
	for _, d := range docs {
		cur := root
		parts := strings.Split(d.Path, "/")
		for i, part := range parts {
			next, ok := cur.children[part]
			if !ok {
				next = newNode()
				cur.children[part] = next
			}
			cur = next
			if i == len(parts)-1 {
				cur.doc = true
				cur.deleted = d.DeletedAt != nil
			}
		}
	}

	var walk func(n *node, prefix string)
	walk = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		slices.Sort(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector, indent := "├── ", "│   "
			if last {
				connector, indent = "└── ", "    "
			}
			suffix := ""
			if !child.doc && len(child.children) > 0 {
				suffix = "/"
			}
			if child.deleted {
				suffix += " [deleted]"
			}
			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)
			walk(child, prefix+indent)
		}
	}
	walk(root, "")
}

// History prints one line per version: key, version, time, author and
// message.
func History(w io.Writer, docs []store.Document) {
	for _, d := range docs {
		msg := "-"
		if d.Message != "" {
			msg = strconv.Quote(d.Message)
		}
		fmt.Fprintf(w, "%s  v%-3d  %s  %-16s  %s%s\n",
			d.Key, d.Version, time.Unix(d.CreatedAt, 0).Format("2006-01-02 15:04"), author(d), msg, deletedSuffix(d))
	}
}

// HistoryDiff prints each version as a diff against the one before it.
// docs must be newest first, as returned by History.
func HistoryDiff(w io.Writer, docs []store.Document, colour bool) {
	for i := 0; i+1 < len(docs); i++ {
		newer, older := docs[i], docs[i+1]

		fmt.Fprintf(w, "=== v%d -> v%d (%s by %s) ===\n",
			older.Version, newer.Version, time.Unix(newer.CreatedAt, 0).Format("2006-01-02 15:04"), author(newer))
		if newer.Message != "" {
			fmt.Fprintf(w, "Message: %s\n", newer.Message)
		}
		r := diff.Compute(older.Content, newer.Content, "v"+strconv.Itoa(older.Version), "v"+strconv.Itoa(newer.Version))
		fmt.Fprint(w, r.Format(colour))
		fmt.Fprintln(w)
	}
}
