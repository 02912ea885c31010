package validate

import "fmt"

// Content checks content size only. Any text is accepted, including the
// empty string. maxLen <= 0 disables the check.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}
