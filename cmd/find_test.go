package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// openNotes writes testNotes and focuses it with the cursor at the start.
func openNotes(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.write("notes.txt", testNotes)
	env.run("open", "notes.txt", "--cursor", "1:1")
	return env
}

func TestFind_Navigation(t *testing.T) {
	env := openNotes(t)

	env.contains(env.run("find", "show", "colour"), `1/5 "colour" at 1:1-1:7 in notes.txt`)
	env.contains(env.run("find", "next"), `2/5 "colour" at 2:5-2:11`)
	env.contains(env.run("find", "next"), `3/5 "colour" at 4:1-4:7`)
	env.contains(env.run("find", "prev"), `2/5`)

	// the match becomes the editor selection
	env.contains(env.run("status"), "Selection: 2:5-2:11")

	for range 4 {
		env.run("find", "next")
	}
	env.contains(env.run("find", "status"), "1/5")
	env.contains(env.run("find", "prev"), "5/5")
}

func TestFind_SeedFromSelection(t *testing.T) {
	env := newTestEnv(t)
	env.write("notes.txt", testNotes)
	env.run("open", "notes.txt", "--select", "2:5-2:11")

	env.contains(env.run("find", "show"), `2/5 "colour" at 2:5-2:11`)
}

func TestFind_Replace(t *testing.T) {
	env := openNotes(t)
	env.run("find", "show", "colour")

	out := env.run("find", "replace", "color")
	env.contains(out, "Replaced 1")
	env.contains(out, `1/4 "colour" at 2:5-2:11`)

	// stored replacement is reused
	out = env.run("find", "replace")
	env.contains(out, "1/3")

	out = env.run("find", "replace-all", "color")
	env.contains(out, "Replaced 3")
	env.contains(out, `No matches for "colour"`)

	env.equals(env.cat("notes.txt"),
		"color the header\nthe color of text\nno match here\ncolor color color")
}

func TestFind_Regex(t *testing.T) {
	env := newTestEnv(t)
	env.write("nums.txt", "a1 b22 c333")
	env.run("open", "nums.txt")

	env.run("find", "show")
	env.contains(env.run("find", "toggle-regex"), "Finder open in nums.txt")

	out := env.run("find", "search", `\d+`)
	env.contains(out, "1/3")
	env.contains(out, "[regex]")

	env.contains(env.run("find", "replace-all", "<$&>"), "Replaced 3")
	env.equals(env.cat("nums.txt"), "a<1> b<22> c<333>")
}

func TestFind_InvalidRegexIsNotAnError(t *testing.T) {
	env := openNotes(t)
	env.run("find", "show")
	env.run("find", "toggle-regex")

	out := env.run("find", "search", "(")
	env.contains(out, "invalid pattern")

	env.contains(env.runStdout("find", "status", "-o", "json"), `"error"`)
}

func TestFind_MatchCase(t *testing.T) {
	env := newTestEnv(t)
	env.write("a.txt", "Colour colour")
	env.run("open", "a.txt")

	env.contains(env.run("find", "show", "colour"), "/2")
	out := env.run("find", "toggle-case")
	env.contains(out, "1/1")
	env.contains(out, "[case]")
}

func TestFind_Hide(t *testing.T) {
	env := openNotes(t)
	env.run("find", "show", "colour")

	env.contains(env.run("find", "hide"), "Finder hidden")
	env.contains(env.runStdout("find", "status", "-o", "json"), `"visible":false`)

	out, err := env.runErr("find", "next")
	require.Error(t, err)
	env.contains(out, "not visible")

	// clearAfterHidden is on by default
	env.notContains(env.runStdout("find", "status", "-o", "json"), `"query":"colour"`)

	env.settings("clearAfterHidden", "false")
	env.run("find", "show", "colour")
	env.run("find", "hide")
	env.contains(env.runStdout("find", "status", "-o", "json"), `"query":"colour"`)
}

func TestFind_Keys(t *testing.T) {
	env := openNotes(t)
	env.run("find", "show", "colour")

	env.contains(env.run("find", "key", "Enter"), "2/5")
	env.contains(env.run("find", "key", "shift+return"), "1/5")

	env.run("find", "replace", "color")
	env.contains(env.run("find", "key", "mod+enter"), "Replaced")

	_, err := env.runErr("find", "key", "ctrl+q")
	require.Error(t, err)

	env.contains(env.run("find", "key", "esc"), "Finder hidden")
}

func TestFind_HotkeysDisabled(t *testing.T) {
	env := openNotes(t)
	env.settings("enableInputHotkeys", "false")
	env.run("find", "show", "colour")

	env.run("find", "key", "alt+c")
	env.notContains(env.run("find", "status"), "[case]")

	// navigation keys always work
	env.contains(env.run("find", "key", "enter"), "2/5")
}

func TestFind_CloseTearsDown(t *testing.T) {
	env := openNotes(t)
	env.run("view", "preview")
	env.settings("sourceModeWhenSearch", "true")

	env.run("find", "show", "colour")
	env.contains(env.run("status"), "View:      source")

	env.run("close")
	env.contains(env.runStdout("find", "status", "-o", "json"), `"visible":false`)
}

func TestFind_DelegatedInPreview(t *testing.T) {
	env := openNotes(t)
	env.run("view", "preview")
	env.settings("useObsidianSearchInRead", "true")

	env.contains(env.run("find", "show", "colour"), "handed to the preview view")
	env.contains(env.runStdout("find", "status", "-o", "json"), `"delegated":true`)
}
