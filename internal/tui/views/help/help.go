package help

import (
	"github.com/muesli/reflow/wordwrap"

	"filterdesk/internal/tui/state"
	overlay "filterdesk/internal/tui/widgets/helpoverlay"
)

// RenderHelp returns the grouped keys overlay, wrapped to the terminal width.
func RenderHelp(s state.UIState) string {
	out := overlay.NewHelpOverlay().View(s)
	if s.Width > 0 {
		out = wordwrap.String(out, s.Width)
	}
	return out
}
