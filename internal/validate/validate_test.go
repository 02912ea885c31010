package validate_test

import (
	"strings"
	"testing"

	"github.com/jpl-au/textfinder/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
		wantErr error
	}{
		{"plain", "notes/todo", 0, "notes/todo", nil},
		{"normalised", "/notes/todo/", 0, "notes/todo", nil},
		{"empty", "", 0, "", validate.ErrInvalidPath},
		{"null byte", "a\x00b", 0, "", validate.ErrInvalidPath},
		{"traversal", "../x", 0, "", validate.ErrInvalidPath},
		{"too long", strings.Repeat("a", 11), 10, "", validate.ErrPathTooLong},
		{"at limit", strings.Repeat("a", 10), 10, strings.Repeat("a", 10), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validate.Path(tt.input, tt.maxLen)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContent(t *testing.T) {
	assert.NoError(t, validate.Content("", 0))
	assert.NoError(t, validate.Content("abc", 3))
	assert.NoError(t, validate.Content(strings.Repeat("x", 1000), 0))
	assert.ErrorIs(t, validate.Content("abcd", 3), validate.ErrContentTooLarge)
}
