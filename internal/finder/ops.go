package finder

import (
	"context"
	"errors"

	"github.com/dlclark/regexp2"

	"github.com/jpl-au/textfinder/internal/replace"
	"github.com/jpl-au/textfinder/internal/span"
	"github.com/jpl-au/textfinder/internal/workspace"
)

// Status reports the overlay after an operation.
type Status struct {
	State
	Path     string       `json:"path,omitempty"`
	Matches  []span.Range `json:"-"`
	Total    int          `json:"total"`
	Index    int          `json:"index"` // 1-based position of the current match, 0 when none
	Match    string       `json:"match,omitempty"`
	Replaced int          `json:"replaced,omitempty"`
	Action   string       `json:"action,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// Actions reported in Status.Action.
const (
	ActionShow       = "show"
	ActionDelegate   = "delegate"
	ActionSearch     = "search"
	ActionNext       = "next"
	ActionPrev       = "prev"
	ActionReplace    = "replace"
	ActionReplaceAll = "replace-all"
	ActionHide       = "hide"
	ActionRegex      = "toggle-regex"
	ActionCase       = "toggle-case"
)

func status(st State, path string, h hits, action string) Status {
	s := Status{State: st, Path: path, Matches: h.ranges, Total: h.len(), Action: action}
	if st.Current >= 0 && st.Current < h.len() {
		s.Index = st.Current + 1
		s.Match = h.ranges[st.Current].String()
	}
	return s
}

// Show makes the overlay visible. An empty query seeds from the selection
// when useSelectionAsSearch is on and the selection is a non-empty single
// line; otherwise the previous query is kept.
//
// Over a preview view, useObsidianSearchInRead hands the search to the
// host (the overlay stays hidden) and sourceModeWhenSearch switches the
// editor to source until the overlay is hidden.
func (o *Overlay) Show(ctx context.Context, query string) (Status, error) {
	s := o.settings.Current()
	st, err := o.State(ctx)
	if err != nil {
		return Status{}, err
	}
	wst, err := o.ws.State(ctx)
	if err != nil {
		return Status{}, err
	}

	if wst.View == workspace.ViewPreview {
		switch {
		case s.UseObsidianSearchInRead:
			if query != "" {
				st.Query = query
			}
			st.Visible = false
			st.Delegated = true
			return Status{State: st, Path: wst.Path, Action: ActionDelegate}, o.save(ctx, st)
		case s.SourceModeWhenSearch:
			if _, err := o.ws.SetView(ctx, workspace.ViewSource); err != nil {
				return Status{}, err
			}
			st.PrevView = workspace.ViewPreview
		}
	}

	sess, err := o.ws.Active(ctx)
	if err != nil {
		return Status{}, err
	}

	switch sel := sess.Buffer.Selection(); {
	case query != "":
		st.Query = query
	case s.UseSelectionAsSearch && !sel.Empty() && sel.From.Line == sel.To.Line:
		st.Query = sess.Buffer.SelectedText()
		if st.Regex {
			st.Query = regexp2.Escape(st.Query)
		}
	}
	st.Visible = true
	st.Delegated = false

	return o.refresh(ctx, sess, st, ActionShow)
}

// Search replaces the query and recomputes matches. The current match
// becomes the first one at or after the selection.
func (o *Overlay) Search(ctx context.Context, query string) (Status, error) {
	return o.visible(ctx, func(sess *workspace.Session, st State) (Status, error) {
		st.Query = query
		return o.refresh(ctx, sess, st, ActionSearch)
	})
}

// ToggleRegex switches between literal and regex matching.
func (o *Overlay) ToggleRegex(ctx context.Context) (Status, error) {
	return o.visible(ctx, func(sess *workspace.Session, st State) (Status, error) {
		st.Regex = !st.Regex
		return o.refresh(ctx, sess, st, ActionRegex)
	})
}

// ToggleCase switches case-sensitive matching.
func (o *Overlay) ToggleCase(ctx context.Context) (Status, error) {
	return o.visible(ctx, func(sess *workspace.Session, st State) (Status, error) {
		st.MatchCase = !st.MatchCase
		return o.refresh(ctx, sess, st, ActionCase)
	})
}

// Next moves to the following match, wrapping at the end.
func (o *Overlay) Next(ctx context.Context) (Status, error) {
	return o.step(ctx, 1)
}

// Prev moves to the preceding match, wrapping at the start.
func (o *Overlay) Prev(ctx context.Context) (Status, error) {
	return o.step(ctx, -1)
}

func (o *Overlay) step(ctx context.Context, dir int) (Status, error) {
	action := ActionNext
	if dir < 0 {
		action = ActionPrev
	}
	return o.visible(ctx, func(sess *workspace.Session, st State) (Status, error) {
		h, err := find(sess.Buffer, st)
		if err != nil {
			return o.invalid(ctx, sess, st, action, err)
		}
		n := h.len()
		switch {
		case n == 0:
			st.Current = -1
		case st.Current >= 0 && st.Current < n:
			st.Current = (st.Current + dir + n) % n
		case dir > 0:
			st.Current = h.after(sess.Buffer, sess.Buffer.Cursor())
		default:
			st.Current = h.before(sess.Buffer, sess.Buffer.Cursor())
		}

		if st.Current >= 0 && o.settings.Current().MoveCursorToMatch {
			sess.Buffer.SetSelection(h.ranges[st.Current])
			if _, err := sess.Commit(ctx, o.author, DefaultMessage); err != nil {
				return Status{}, err
			}
		}
		return status(st, sess.Path, h, action), o.save(ctx, st)
	})
}

// ReplaceCurrent replaces the current match with text, or the first match
// at or after the cursor when there is no current match. text is unescaped
// when useEscapeCharInReplace is on; in regex mode it may reference groups.
func (o *Overlay) ReplaceCurrent(ctx context.Context, text string) (Status, error) {
	return o.visible(ctx, func(sess *workspace.Session, st State) (Status, error) {
		st.Replace = text
		s := o.settings.Current()

		h, err := find(sess.Buffer, st)
		if err != nil {
			return o.invalid(ctx, sess, st, ActionReplace, err)
		}
		if h.len() == 0 {
			st.Current = -1
			return status(st, sess.Path, h, ActionReplace), o.save(ctx, st)
		}

		i := st.Current
		if i < 0 || i >= h.len() {
			i = h.after(sess.Buffer, sess.Buffer.Selection().From)
		}
		tmpl := o.template(text)
		expanded, err := h.expand(sess.Buffer.Content(), tmpl, i)
		if err != nil {
			return Status{}, err
		}
		sess.Buffer.ReplaceRange(h.ranges[i], expanded)

		h, err = find(sess.Buffer, st)
		if err != nil {
			return Status{}, err
		}
		st.Current = h.after(sess.Buffer, sess.Buffer.Cursor())
		if st.Current >= 0 && s.MoveCursorToMatch {
			sess.Buffer.SetSelection(h.ranges[st.Current])
		}
		if _, err := sess.Commit(ctx, o.author, DefaultMessage); err != nil {
			return Status{}, err
		}

		res := status(st, sess.Path, h, ActionReplace)
		res.Replaced = 1
		return res, o.save(ctx, st)
	})
}

// ReplaceAll replaces every match with text. The cursor stays where it
// was, clamped into the new content.
func (o *Overlay) ReplaceAll(ctx context.Context, text string) (Status, error) {
	return o.visible(ctx, func(sess *workspace.Session, st State) (Status, error) {
		st.Replace = text

		h, err := find(sess.Buffer, st)
		if err != nil {
			return o.invalid(ctx, sess, st, ActionReplaceAll, err)
		}
		count := h.len()
		if count > 0 {
			out, err := h.p.Replace(sess.Buffer.Content(), o.template(text))
			if err != nil {
				return Status{}, err
			}
			b := sess.Buffer
			cursor := b.Cursor()
			b.ReplaceRange(span.Range{To: b.PositionAt(b.Len())}, out)
			b.SetCursor(cursor)
			if _, err := sess.Commit(ctx, o.author, DefaultMessage); err != nil {
				return Status{}, err
			}
			if h, err = find(sess.Buffer, st); err != nil {
				return Status{}, err
			}
		}
		st.Current = h.after(sess.Buffer, sess.Buffer.Cursor())

		res := status(st, sess.Path, h, ActionReplaceAll)
		res.Replaced = count
		return res, o.save(ctx, st)
	})
}

// Hide hides the overlay and restores a view switched by Show. With
// clearAfterHidden the query and replace text are cleared. Hiding a hidden
// overlay does nothing.
func (o *Overlay) Hide(ctx context.Context) (Status, error) {
	st, err := o.State(ctx)
	if err != nil {
		return Status{}, err
	}
	if !st.Visible && !st.Delegated {
		return Status{State: st}, nil
	}

	if err := o.restoreView(ctx, &st); err != nil && !errors.Is(err, workspace.ErrNoActiveEditor) {
		return Status{}, err
	}
	st.Visible = false
	st.Delegated = false
	st.Current = -1
	if o.settings.Current().ClearAfterHidden {
		st.Query = ""
		st.Replace = ""
	}
	return Status{State: st, Action: ActionHide}, o.save(ctx, st)
}

// Status reports the overlay without changing it. Matches are computed
// only while the overlay is visible over a focused buffer.
func (o *Overlay) Status(ctx context.Context) (Status, error) {
	st, err := o.State(ctx)
	if err != nil {
		return Status{}, err
	}
	if !st.Visible {
		return Status{State: st}, nil
	}
	sess, err := o.ws.Active(ctx)
	if errors.Is(err, workspace.ErrNoActiveEditor) {
		return Status{State: st}, nil
	}
	if err != nil {
		return Status{}, err
	}
	h, err := find(sess.Buffer, st)
	if err != nil {
		res := status(st, sess.Path, hits{}, "")
		res.Error = err.Error()
		return res, nil
	}
	return status(st, sess.Path, h, ""), nil
}

func (o *Overlay) template(text string) string {
	if o.settings.Current().UseEscapeCharInReplace {
		return replace.Unescape(text)
	}
	return text
}

// visible loads the state and the focused buffer, failing when the
// overlay is hidden.
func (o *Overlay) visible(ctx context.Context, fn func(sess *workspace.Session, st State) (Status, error)) (Status, error) {
	st, err := o.State(ctx)
	if err != nil {
		return Status{}, err
	}
	if !st.Visible {
		return Status{}, ErrNotVisible
	}
	sess, err := o.ws.Active(ctx)
	if err != nil {
		return Status{}, err
	}
	return fn(sess, st)
}

// refresh recomputes matches and picks the current one from the
// selection start. An invalid regex is reported in Status.Error.
func (o *Overlay) refresh(ctx context.Context, sess *workspace.Session, st State, action string) (Status, error) {
	h, err := find(sess.Buffer, st)
	if err != nil {
		return o.invalid(ctx, sess, st, action, err)
	}
	st.Current = h.after(sess.Buffer, sess.Buffer.Selection().From)
	return status(st, sess.Path, h, action), o.save(ctx, st)
}

// invalid saves st with no current match and reports a compile failure
// without failing the operation, so a half-typed pattern is not an error.
func (o *Overlay) invalid(ctx context.Context, sess *workspace.Session, st State, action string, err error) (Status, error) {
	var pce *replace.PatternCompileError
	if !errors.As(err, &pce) {
		return Status{}, err
	}
	st.Current = -1
	res := status(st, sess.Path, hits{}, action)
	res.Error = pce.Error()
	return res, o.save(ctx, st)
}
