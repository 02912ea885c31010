// Package settings holds the find/replace configuration record.
//
// Settings is a flat value passed explicitly into the replacement engine
// and the finder overlay. Loading merges whatever was persisted over the
// default record field by field; nothing is validated at load or save time,
// so a transiently invalid pattern can be saved while it is being edited.
// Invalid regex sources surface later, when the engine compiles them.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
)

// Settings is the persisted configuration record. JSON keys match the
// layout of the settings file (data.json).
type Settings struct {
	FindText    string `json:"findText"`
	FindRegexp  string `json:"findRegexp"`
	RegexpFlags string `json:"regexpFlags"`
	Replace     string `json:"replace"`

	// Finder overlay options.
	ClearAfterHidden        bool `json:"clearAfterHidden"`
	EnableInputHotkeys      bool `json:"enableInputHotkeys"`
	SourceModeWhenSearch    bool `json:"sourceModeWhenSearch"`
	MoveCursorToMatch       bool `json:"moveCursorToMatch"`
	UseSelectionAsSearch    bool `json:"useSelectionAsSearch"`
	UseObsidianSearchInRead bool `json:"useObsidianSearchInRead"`
	UseEscapeCharInReplace  bool `json:"useEscapeCharInReplace"`
}

// Default returns the default record. Missing fields on load take these values.
func Default() Settings {
	return Settings{
		RegexpFlags:            "g",
		ClearAfterHidden:       true,
		EnableInputHotkeys:     true,
		MoveCursorToMatch:      true,
		UseSelectionAsSearch:   true,
		UseEscapeCharInReplace: true,
	}
}

// Persister reads and writes the serialised record.
// Read returns nil data (and no error) when nothing has been saved yet.
type Persister interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Load reads the persisted record and merges it over the defaults.
// An empty store yields exactly Default().
func Load(ctx context.Context, p Persister) (Settings, error) {
	s := Default()
	data, err := p.Read(ctx)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	// Decoding into the populated default keeps every field the record omits.
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// Save serialises the full record, overwriting whatever was stored.
func Save(ctx context.Context, p Persister, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := p.Write(ctx, data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
