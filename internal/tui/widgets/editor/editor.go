package editor

import (
	"fmt"
	"strings"

	"filterdesk/internal/tui/state"
)

type Editor struct{}

func NewEditor() Editor { return Editor{} }

// View frames the active surface's rendering with a header naming the mode.
// Only the visible surface is ever passed in.
func (Editor) View(s state.UIState, body string) string {
	header := "[STRUCTURED]"
	if s.Mode == state.Plain {
		header = "[PLAIN]"
	}
	if s.ReadOnly {
		header += "  read-only"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header)
	fmt.Fprintf(&b, "%s\n", body)
	return b.String()
}
