package finder

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Key names accepted by Overlay.Key. Modifiers may be given in any order
// and case; "mod", "cmd" and "meta" are read as ctrl.
const (
	KeyNext        = "enter"
	KeyPrev        = "shift+enter"
	KeyHide        = "escape"
	KeyReplaceAll  = "ctrl+enter"
	KeyReplace     = "alt+enter"
	KeyToggleRegex = "ctrl+shift+r"
	KeyToggleCase  = "alt+c"
)

var modifiers = []string{"ctrl", "shift", "alt"}

// NormaliseKey canonicalises a key chord, e.g. "Shift+Ctrl+R" becomes
// "ctrl+shift+r".
func NormaliseKey(key string) string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(key)), "+")
	var mods []string
	base := ""
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch p {
		case "mod", "cmd", "meta", "control":
			p = "ctrl"
		case "option":
			p = "alt"
		case "esc":
			p = "escape"
		case "return":
			p = "enter"
		}
		if slices.Contains(modifiers, p) {
			if !slices.Contains(mods, p) {
				mods = append(mods, p)
			}
			continue
		}
		base = p
	}
	slices.SortFunc(mods, func(a, b string) int {
		return slices.Index(modifiers, a) - slices.Index(modifiers, b)
	})
	return strings.Join(append(mods, base), "+")
}

// Key handles a key press inside the overlay. Enter, Shift+Enter and
// Escape always work; the other chords only when enableInputHotkeys is on,
// and are otherwise ignored (Status.Action is empty). Replace chords use
// the stored replace text.
func (o *Overlay) Key(ctx context.Context, key string) (Status, error) {
	k := NormaliseKey(key)

	switch k {
	case KeyHide:
		return o.Hide(ctx)
	case KeyNext:
		return o.Next(ctx)
	case KeyPrev:
		return o.Prev(ctx)
	case KeyReplaceAll, KeyReplace, KeyToggleRegex, KeyToggleCase:
	default:
		return Status{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if !o.settings.Current().EnableInputHotkeys {
		st, err := o.State(ctx)
		if err != nil {
			return Status{}, err
		}
		if !st.Visible {
			return Status{}, ErrNotVisible
		}
		return o.Status(ctx)
	}

	st, err := o.State(ctx)
	if err != nil {
		return Status{}, err
	}
	switch k {
	case KeyReplaceAll:
		return o.ReplaceAll(ctx, st.Replace)
	case KeyReplace:
		return o.ReplaceCurrent(ctx, st.Replace)
	case KeyToggleRegex:
		return o.ToggleRegex(ctx)
	default:
		return o.ToggleCase(ctx)
	}
}
