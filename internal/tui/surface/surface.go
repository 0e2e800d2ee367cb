// Package surface holds the two interchangeable editor presentations of the
// filter text. Callers work through Surface and never branch on which
// implementation is behind it.
package surface

import (
	tea "github.com/charmbracelet/bubbletea"

	"filterdesk/internal/textpos"
)

// Cursor is the caret and the selection anchor as flat rune offsets. With
// no selection Anchor equals Offset.
type Cursor struct {
	Offset int
	Anchor int
}

// Selection returns the selected span [start, end) if there is one.
func (c Cursor) Selection() (start, end int, ok bool) {
	if c.Offset == c.Anchor {
		return c.Offset, c.Offset, false
	}
	if c.Offset < c.Anchor {
		return c.Offset, c.Anchor, true
	}
	return c.Anchor, c.Offset, true
}

// Surface is one editor presentation of the filter text.
type Surface interface {
	Value() string
	// SetValue replaces the content; the caret moves to the end.
	SetValue(s string)

	Focus() tea.Cmd
	Blur()
	Focused() bool

	Cursor() Cursor
	Position() textpos.Position
	// InsertAtCursor replaces the selection (if any) with s and leaves the
	// caret after it.
	InsertAtCursor(s string)
	// Reveal moves the caret to a flat offset using the surface's own
	// addressing and scrolls it into view. Offsets are clamped to the text.
	Reveal(offset int)

	SetSize(width, height int)
	SetReadOnly(ro bool)

	Update(msg tea.Msg) tea.Cmd
	View() string
}

// navigation keys stay live in read-only surfaces.
var navigation = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"ctrl+home": true, "ctrl+end": true,
	"shift+up": true, "shift+down": true, "shift+left": true, "shift+right": true,
	"shift+home": true, "shift+end": true,
}

func editAllowed(readOnly bool, msg tea.Msg) bool {
	if !readOnly {
		return true
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return true
	}
	return navigation[k.String()]
}
