package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settings applies key/value pairs through the settings command.
func (e *testEnv) settings(kv ...string) {
	e.t.Helper()
	for i := 0; i+1 < len(kv); i += 2 {
		e.run("settings", kv[i], kv[i+1])
	}
}

const fr = "find-and-replace-in-selection"

func TestFindReplace_NoActiveEditor(t *testing.T) {
	env := newTestEnv(t)
	env.settings("findText", "colour", "replace", "color")

	out := env.run(fr, "-a", "tester")
	env.equals(out, "")

	env.contains(env.runStdout(fr, "-a", "tester", "-o", "json"), `"skipped":true`)
}

func TestFindReplace_Literal(t *testing.T) {
	t.Run("selection only", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findText", "colour", "replace", "color")
		env.run("open", "notes.txt", "--select", "2:1-2:19")

		out := env.run(fr, "-a", "tester")
		env.contains(out, "Replaced 2:1-2:19 in notes.txt (v2)")

		env.equals(env.cat("notes.txt"),
			"colour the header\nthe color of text\nno match here\ncolour colour colour")
	})

	t.Run("cursor line when nothing selected", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findText", "colour", "replace", "color")
		env.run("open", "notes.txt", "--cursor", "4:3")

		env.run(fr, "-a", "tester")
		env.equals(env.cat("notes.txt"),
			"colour the header\nthe colour of text\nno match here\ncolor color color")
		env.contains(env.run("status"), "Selection: 4:18-4:18")
	})

	t.Run("multi-line selection", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findText", "colour", "replace", "color")
		env.run("open", "notes.txt", "--select", "1:1-2:19")

		env.run(fr, "-a", "tester")
		env.equals(env.cat("notes.txt"),
			"color the header\nthe color of text\nno match here\ncolour colour colour")
	})

	t.Run("replacement is inserted verbatim", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.txt", "price: X")
		env.settings("findText", "X", "replace", "$1 & $&")
		env.run("open", "a.txt", "--cursor", "1:1")

		env.run(fr, "-a", "tester")
		env.equals(env.cat("a.txt"), "price: $1 & $&")
	})

	t.Run("no change still succeeds", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findText", "zzz", "replace", "y")
		env.run("open", "notes.txt", "--cursor", "3:1")

		env.contains(env.run(fr, "-a", "tester"), "No changes in notes.txt")
		_, err := env.runErr("cat", "notes.txt", "-v", "2")
		assert.Error(t, err, "no version written")
	})
}

func TestFindReplace_Regex(t *testing.T) {
	t.Run("numbered groups", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("contacts.txt", testContacts)
		env.settings("findRegexp", `(\w+)@(\w+)`, "replace", "$2:$1")
		env.run("open", "contacts.txt", "--select", "1:1-3:14")

		env.run(fr, "-a", "tester")
		env.equals(env.cat("contacts.txt"), "example:alice\nexample:bob\nexample:carol")
	})

	t.Run("named groups", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("contacts.txt", testContacts)
		env.settings("findRegexp", `(?<user>\w+)@example`, "replace", "<$<user>>")
		env.run("open", "contacts.txt", "--cursor", "2:1")

		env.run(fr, "-a", "tester")
		env.equals(env.cat("contacts.txt"), "alice@example\n<bob>\ncarol@example")
	})

	t.Run("flags", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findRegexp", "COLOUR", "regexpFlags", "i", "replace", "hue")
		env.run("open", "notes.txt", "--cursor", "4:1")

		env.run(fr, "-a", "tester")
		env.equals(env.cat("notes.txt"),
			"colour the header\nthe colour of text\nno match here\nhue colour colour")

		env.settings("regexpFlags", "gi")
		env.run(fr, "-a", "tester")
		env.equals(env.cat("notes.txt"),
			"colour the header\nthe colour of text\nno match here\nhue hue hue")
	})

	t.Run("literal pass runs first", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.txt", "a")
		env.settings("findText", "a", "findRegexp", "b$", "replace", "ab")
		env.run("open", "a.txt", "--cursor", "1:1")

		// "a" -> "ab" (literal) -> "aab" (regex on the literal output)
		env.run(fr, "-a", "tester")
		env.equals(env.cat("a.txt"), "aab")
	})

	t.Run("invalid pattern keeps literal result", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findText", "colour", "findRegexp", "(", "replace", "color")
		env.run("open", "notes.txt", "--cursor", "1:1")

		out := env.run(fr, "-a", "tester")
		env.contains(out, "notice: invalid pattern")
		env.equals(env.cat("notes.txt"),
			"color the header\nthe colour of text\nno match here\ncolour colour colour")
	})

	t.Run("rejected flag", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findRegexp", "colour", "regexpFlags", "gv", "replace", "x")
		env.run("open", "notes.txt", "--cursor", "1:1")

		out := env.run(fr, "-a", "tester")
		env.contains(out, "notice:")
		env.equals(env.cat("notes.txt"), testNotes)
	})
}

func TestFindReplace_DryRunAndJSON(t *testing.T) {
	env := newTestEnv(t)
	env.write("notes.txt", testNotes)
	env.settings("findText", "colour", "replace", "color")
	env.run("open", "notes.txt", "--select", "2:5-2:11")

	out := env.run(fr, "-n", "-a", "tester")
	env.contains(out, "Would replace 2:5-2:11 in notes.txt")
	env.contains(out, "+ the color of text")
	env.equals(env.cat("notes.txt"), testNotes)

	out = env.runStdout(fr, "-a", "tester", "-o", "json")
	env.contains(out, `"before":"colour"`)
	env.contains(out, `"after":"color"`)
	env.contains(out, `"changed":true`)
	env.contains(out, `"version":2`)

	env.contains(env.run("history", "notes.txt"), "find and replace in selection")
	env.contains(env.run("status"), "Selection: 2:10-2:10")
}

func TestFindReplace_WithoutAuthor(t *testing.T) {
	t.Run("no editor is silent", func(t *testing.T) {
		env := newTestEnv(t)
		env.settings("findText", "colour", "replace", "color")

		env.equals(env.run(fr), "")
	})

	t.Run("commits with the default author", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", testNotes)
		env.settings("findText", "colour", "replace", "color")
		env.run("open", "notes.txt", "--cursor", "1:1")

		env.contains(env.run(fr), "Replaced 1:1-1:17 in notes.txt (v2)")
		env.contains(env.run("history", "notes.txt"), "find-and-replace")
	})
}

func TestSettings(t *testing.T) {
	t.Run("list defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("settings")
		env.contains(out, "findText")
		env.contains(out, "regexpFlags")
		env.contains(out, "enableInputHotkeys")
		env.equals(env.run("settings", "regexpFlags"), "g")
	})

	t.Run("set persists to data.json", func(t *testing.T) {
		env := newTestEnv(t)

		env.contains(env.run("settings", "findText", "colour"), `findText = "colour"`)
		env.equals(env.run("settings", "findText"), "colour")

		data, err := os.ReadFile(filepath.Join(env.dir, ".textfinder", "data.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"findText": "colour"`)
	})

	t.Run("merge over defaults", func(t *testing.T) {
		env := newTestEnv(t)
		p := filepath.Join(env.dir, ".textfinder", "data.json")
		require.NoError(t, os.WriteFile(p, []byte(`{"replace":"x"}`), 0o644))

		env.equals(env.run("settings", "replace"), "x")
		env.equals(env.run("settings", "regexpFlags"), "g")
	})

	t.Run("invalid values", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("settings", "nope", "x")
		assert.Error(t, err)
		_, err = env.runErr("settings", "clearAfterHidden", "maybe")
		assert.Error(t, err)
	})

	t.Run("patterns are not validated on save", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("settings", "findRegexp", "(")
		env.equals(env.run("settings", "findRegexp"), "(")
	})

	t.Run("reset", func(t *testing.T) {
		env := newTestEnv(t)
		env.settings("regexpFlags", "i", "findText", "x")

		env.run("settings", "reset")
		env.equals(env.run("settings", "regexpFlags"), "g")
		env.equals(env.run("settings", "findText"), "")
	})
}
