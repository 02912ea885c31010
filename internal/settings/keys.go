// keys.go provides key-value access to the settings record.
//
// The settings panel (CLI "settings" command and the MCP settings tools)
// binds each field 1:1 by its JSON key. Text fields accept any string,
// including patterns that do not compile; toggles accept true or false.

package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownKey is returned when getting/setting an unknown settings key.
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrInvalidValue is returned when a toggle is given something other than true/false.
	ErrInvalidValue = errors.New("invalid settings value")
)

// Kind is the control type a field is rendered with in the panel.
type Kind string

const (
	KindText   Kind = "text"
	KindToggle Kind = "toggle"
)

// Field describes one panel control.
type Field struct {
	Key         string `json:"key"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
}

var fields = []Field{
	{"findText", KindText, "Literal text to find (empty disables the literal pass)"},
	{"findRegexp", KindText, "Regular expression to find (empty disables the regex pass)"},
	{"regexpFlags", KindText, "Regular expression flags (g, i, m, s, u, d)"},
	{"replace", KindText, "Replacement text; $1, $<name>, $& apply in the regex pass"},
	{"clearAfterHidden", KindToggle, "Clear the finder query when the finder is hidden"},
	{"enableInputHotkeys", KindToggle, "Allow finder hotkeys while the finder input is focused"},
	{"sourceModeWhenSearch", KindToggle, "Switch to source view while the finder is open"},
	{"moveCursorToMatch", KindToggle, "Move the cursor to each match while navigating"},
	{"useSelectionAsSearch", KindToggle, "Seed the finder query from the current selection"},
	{"useObsidianSearchInRead", KindToggle, "Use the native search instead of the finder in preview view"},
	{"useEscapeCharInReplace", KindToggle, "Interpret \\n, \\t and \\\\ in finder replacement text"},
}

// Fields returns the panel controls in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// ValidKeys returns all settings keys in display order.
func ValidKeys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// IsValidKey returns true if key names a settings field.
func IsValidKey(key string) bool {
	_, ok := lookup(key)
	return ok
}

func lookup(key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// text returns a pointer to the text field named key.
func (s *Settings) text(key string) *string {
	switch key {
	case "findText":
		return &s.FindText
	case "findRegexp":
		return &s.FindRegexp
	case "regexpFlags":
		return &s.RegexpFlags
	case "replace":
		return &s.Replace
	}
	return nil
}

// toggle returns a pointer to the boolean field named key.
func (s *Settings) toggle(key string) *bool {
	switch key {
	case "clearAfterHidden":
		return &s.ClearAfterHidden
	case "enableInputHotkeys":
		return &s.EnableInputHotkeys
	case "sourceModeWhenSearch":
		return &s.SourceModeWhenSearch
	case "moveCursorToMatch":
		return &s.MoveCursorToMatch
	case "useSelectionAsSearch":
		return &s.UseSelectionAsSearch
	case "useObsidianSearchInRead":
		return &s.UseObsidianSearchInRead
	case "useEscapeCharInReplace":
		return &s.UseEscapeCharInReplace
	}
	return nil
}

// Get returns the value of a settings key as a string.
func (s Settings) Get(key string) (string, error) {
	if p := s.text(key); p != nil {
		return *p, nil
	}
	if p := s.toggle(key); p != nil {
		return strconv.FormatBool(*p), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set sets the value of a settings key. Text values are stored verbatim.
func (s *Settings) Set(key, value string) error {
	if p := s.text(key); p != nil {
		*p = value
		return nil
	}
	if p := s.toggle(key); p != nil {
		switch strings.ToLower(value) {
		case "true":
			*p = true
		case "false":
			*p = false
		default:
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// All returns every settings value keyed by name.
func (s Settings) All() map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Key], _ = s.Get(f.Key)
	}
	return m
}
