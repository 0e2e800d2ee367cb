package helpoverlay

import (
	"fmt"
	"strings"

	"filterdesk/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current mode indicated.
func (HelpOverlay) View(s state.UIState) string {
	toggle := "ctrl+t: switch structured/plain editor"
	if !s.CanToggle {
		toggle = "ctrl+t: (structured editor unavailable)"
	}
	sections := []struct {
		title string
		keys  []string
	}{
		{"Filter", []string{"ctrl+k: check syntax", "ctrl+b: insert from filter builder", "ctrl+o: load filter by id"}},
		{"Editor", []string{toggle, "shift+arrows: select (structured)", "pgup/pgdn: scroll"}},
		{"View", []string{"ctrl+d: diff off/unified/side-by-side", "ctrl+w: wrap diff", "alt+up/alt+down: scroll diff"}},
		{"Session", []string{"ctrl+y: copy filter to clipboard", "ctrl+s: save and quit", "esc/ctrl+c: quit without saving", "f1: close help"}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Editor: %s)\n", s.Mode)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			fmt.Fprintf(&b, "  %s\n", k)
		}
	}
	return b.String()
}
