package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/textfinder/internal/path"
)

// Path validates p and returns its normalised form. maxLen <= 0 disables
// the length check, which read paths rely on.
func Path(p string, maxLen int) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	if maxLen > 0 && len(p) > maxLen {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrPathTooLong, len(p), maxLen)
	}

	norm, err := path.Normalise(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return norm, nil
}
