package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("creates store", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("init")
		env.contains(out, "Initialised textfinder store")
		assert.FileExists(t, filepath.Join(env.dir, ".textfinder", "textfinder.db"))
		assert.FileExists(t, filepath.Join(env.dir, ".textfinder", ".gitignore"))
	})

	t.Run("refuses to reinitialise", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("init")
		require.Error(t, err)
		env.contains(out, "already exists")
	})

	t.Run("force replaces store", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.txt", "content")

		env.run("init", "--force")

		out := env.run("ls")
		env.notContains(out, "notes.txt")
	})

	t.Run("named database", func(t *testing.T) {
		env := newBareEnv(t)

		env.run("init", "--db", "scratch")
		assert.FileExists(t, filepath.Join(env.dir, ".textfinder", "textfinder-scratch.db"))

		env.runStdin("scratch text", "write", "a.txt", "--db", "scratch", "-a", "tester")
		env.equals(env.runStdout("cat", "a.txt", "--db", "scratch"), "scratch text")
	})

	t.Run("dir flag", func(t *testing.T) {
		env := newBareEnv(t)
		project := filepath.Join(env.dir, "project")
		require.NoError(t, os.Mkdir(project, 0o755))

		env.run("init", "--dir", project)
		assert.FileExists(t, filepath.Join(project, ".textfinder", "textfinder.db"))

		env.runStdin("text", "write", "a.txt", "--dir", project, "-a", "tester")
		env.contains(env.run("ls", "--dir", project), "a.txt")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("init", "-o", "json")
		env.contains(out, `"path"`)
	})
}

func TestCommandsBeforeInit(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("ls")
	require.Error(t, err)
	env.contains(out, "not initialised")

	// bootstrap commands work without a store
	env.contains(env.run("guide"), "textfinder")
	env.run("config")
}
