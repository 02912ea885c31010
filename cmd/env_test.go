// The cmd tests run the built binary end to end: command parsing, the
// extension layer, the service and SQLite. Each test gets its own project
// directory and HOME so neither the store nor the global config leaks
// between tests.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the textfinder binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "textfinder-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "textfinder"
		if os.PathSeparator == '\\' {
			binaryName = "textfinder.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a project directory with an initialised store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

// newBareEnv creates a project directory without a store.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"TEXTFINDER_DB=",
		"TEXTFINDER_DIR=",
	)
	return cmd
}

// run executes textfinder and returns its combined output, failing the
// test on a non-zero exit.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("textfinder %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes textfinder and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdout executes textfinder and returns stdout only, so notices on
// stderr do not disturb JSON parsing.
func (e *testEnv) runStdout(args ...string) string {
	e.t.Helper()
	out, err := e.command(args...).Output()
	if err != nil {
		e.t.Fatalf("textfinder %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runStdin executes textfinder with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("textfinder %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes textfinder with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// write stores content at path as author "tester".
func (e *testEnv) write(path, content string) {
	e.t.Helper()
	e.runStdin(content, "write", path, "-a", "tester")
}

// cat returns the latest text of path.
func (e *testEnv) cat(path string) string {
	e.t.Helper()
	return e.runStdout("cat", path, "--raw")
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks output does not contain s.
func (e *testEnv) notContains(output, s string) {
	e.t.Helper()
	assert.NotContains(e.t, output, s)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// Fixture buffers. testNotes has a misspelling on every line so each
// test can pick a different span.
const (
	testNotes = "colour the header\nthe colour of text\nno match here\ncolour colour colour"

	testContacts = "alice@example\nbob@example\ncarol@example"
)
