package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	r := Compute("foo\nbar\nbaz\n", "foo\nqux\nbaz\n", "old", "new")
	assert.Equal(t, "old", r.Old)
	assert.Equal(t, "new", r.New)
	assert.Equal(t, "  foo\n- bar\n+ qux\n  baz\n", r.Diff)
	assert.False(t, r.Empty())
}

func TestCompute_Identical(t *testing.T) {
	r := Compute("same\n", "same\n", "a", "b")
	assert.True(t, r.Empty())
}

func TestCompute_CollapsesContext(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8\nx\n"
	r := Compute(old, "1\n2\n3\n4\n5\n6\n7\n8\ny\n", "a", "b")
	assert.Equal(t, "  1\n  2\n  3\n  ...\n  6\n  7\n  8\n- x\n+ y\n", r.Diff)
}

func TestFormat(t *testing.T) {
	r := Result{Old: "a", New: "b", Diff: "- x\n+ y\n"}
	assert.Equal(t, "--- a\n+++ b\n- x\n+ y\n", r.Format(false))
	assert.Contains(t, r.Format(true), "\033[31m- x\033[0m")
	assert.Contains(t, r.Format(true), "\033[32m+ y\033[0m")
}

func TestParseVersionRange(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		v1, v2 int
		errMsg string
	}{
		{name: "valid range", input: "1:3", v1: 1, v2: 3},
		{name: "same version", input: "2:2", v1: 2, v2: 2},
		{name: "reversed", input: "5:2", v1: 5, v2: 2},
		{name: "empty colon", input: ":", errMsg: "both versions required"},
		{name: "missing end", input: "3:", errMsg: "both versions required"},
		{name: "too many colons", input: "1:2:3", errMsg: "expected v1:v2"},
		{name: "non-numeric start", input: "abc:5", errMsg: "invalid start version"},
		{name: "non-numeric end", input: "3:xyz", errMsg: "invalid end version"},
		{name: "zero start", input: "0:3", errMsg: "start version must be >= 1"},
		{name: "negative end", input: "1:-5", errMsg: "end version must be >= 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1, v2, err := ParseVersionRange(tt.input)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.v1, v1)
			assert.Equal(t, tt.v2, v2)
		})
	}
}
