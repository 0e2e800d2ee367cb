package statusbar

import (
	"fmt"
	"strings"

	"filterdesk/internal/textpos"
	"filterdesk/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state. pos is the
// cursor of the active surface.
func (StatusBar) View(s state.UIState, pos textpos.Position, busy string) string {
	mode := "[STRUCTURED]"
	if s.Mode == state.Plain {
		mode = "[PLAIN]"
	}
	toggle := "^T: switch editor"
	if !s.CanToggle {
		toggle = "^T: unavailable"
	}
	check := "^K: check"
	if s.Busy {
		check = busy + " checking…"
	}
	parts := []string{mode, fmt.Sprintf("Ln %d, Col %d", pos.Row+1, pos.Column+1), check, toggle}
	if s.Fetching {
		parts = append(parts, busy+" loading filter…")
	}
	if s.Diff != state.DiffOff {
		view := "Unified"
		if s.Diff == state.SideBySide {
			view = "Side-by-side"
		}
		parts = append(parts, "Diff: "+view)
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
