package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filterdesk/internal/tui/state"
	"filterdesk/internal/tui/util"
)

// View renders tags in a stable order using colored chips when possible and
// ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.EDITED:
		return "Edited"
	case state.READ_ONLY:
		return "Read-only"
	case state.SYNTAX_OK:
		return "Syntax OK"
	case state.SYNTAX_ERROR:
		return "Syntax error"
	case state.MATCH:
		return "Match"
	case state.NO_MATCH:
		return "No match"
	case state.ORIG_LEN:
		return fmt.Sprintf("Orig %d", t.Value)
	case state.MOD_LEN:
		return fmt.Sprintf("Mod %d", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Text)
	switch t.Kind {
	case state.EDITED:
		return base.Background(p.Primary)
	case state.SYNTAX_OK, state.MATCH:
		return base.Background(p.Success)
	case state.SYNTAX_ERROR, state.NO_MATCH:
		return base.Background(p.Danger)
	case state.READ_ONLY:
		return base.Background(p.Warning).Foreground(p.Dark)
	case state.ORIG_LEN, state.MOD_LEN:
		return base.Background(p.Muted)
	default:
		return base
	}
}
