package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"filterdesk/internal/tui/state"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	addChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
	label   = lipgloss.NewStyle().Bold(true)
)

type DiffView struct{}

func NewDiffView() DiffView { return DiffView{} }

// View renders the loaded filter against the current text. The result is
// windowed by s.ScrollV and height lines (height <= 0 shows everything).
func (DiffView) View(s state.UIState, loaded, current string, height int) string {
	var out string
	switch s.Diff {
	case state.DiffOff:
		return ""
	case state.SideBySide:
		out = sideBySide(loaded, current, s)
	default:
		out = unified(loaded, current)
	}
	return window(out, s.ScrollV, height)
}

func window(out string, from, height int) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if from > len(lines)-1 {
		from = len(lines) - 1
	}
	if from < 0 {
		from = 0
	}
	lines = lines[from:]
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n") + "\n"
}

// unified renders a simple unified diff with line- and char-level highlights.
func unified(before, after string) string {
	if before == after {
		return "No changes\n"
	}
	var sb strings.Builder
	sb.WriteString(label.Render("LOADED vs EDITED (Unified)") + "\n")
	// Heuristic: if line counts match, do per-line char highlight; otherwise show raw blocks.
	bLines := strings.Split(before, "\n")
	aLines := strings.Split(after, "\n")
	if len(bLines) == len(aLines) {
		for i := range bLines {
			bl, al := bLines[i], aLines[i]
			if bl == al {
				sb.WriteString("  " + faint.Render(bl) + "\n")
				continue
			}
			diffs := charDiff(bl, al)
			sb.WriteString(delLine.Render("- "))
			for _, df := range diffs {
				switch df.Type {
				case dmp.DiffDelete:
					sb.WriteString(delChar.Render(df.Text))
				case dmp.DiffEqual:
					sb.WriteString(delLine.Render(df.Text))
				}
			}
			sb.WriteString("\n")
			sb.WriteString(addLine.Render("+ "))
			for _, df := range diffs {
				switch df.Type {
				case dmp.DiffInsert:
					sb.WriteString(addChar.Render(df.Text))
				case dmp.DiffEqual:
					sb.WriteString(addLine.Render(df.Text))
				}
			}
			sb.WriteString("\n")
		}
		return sb.String()
	}
	// Fallback: show raw blocks
	for _, l := range bLines {
		sb.WriteString(delLine.Render("- ") + l + "\n")
	}
	for _, l := range aLines {
		sb.WriteString(addLine.Render("+ ") + l + "\n")
	}
	return sb.String()
}

func charDiff(a, b string) []dmp.Diff {
	d := dmp.New()
	diffs := d.DiffMain(a, b, false)
	return d.DiffCleanupSemantic(diffs)
}

// sideBySide aligns two columns with a vertical separator.
func sideBySide(before, after string, s state.UIState) string {
	const sep = " │ "
	colWidth := 40
	if s.Width > 0 {
		colWidth = (s.Width - runewidth.StringWidth(sep)) / 2
		if colWidth < 10 {
			colWidth = 10
		}
	}
	var b strings.Builder
	b.WriteString(label.Render(pad("LOADED", colWidth)+sep+"EDITED") + "\n")
	left := strings.Split(before, "\n")
	right := strings.Split(after, "\n")
	max := len(left)
	if len(right) > max {
		max = len(right)
	}
	for i := 0; i < max; i++ {
		l, r := "", ""
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		lc := pad(clip(l, colWidth, s.Wrap), colWidth)
		rc := clip(r, colWidth, s.Wrap)
		switch {
		case l == r:
			b.WriteString(faint.Render(lc) + sep + faint.Render(rc) + "\n")
		default:
			b.WriteString(delLine.Render(lc) + sep + addLine.Render(rc) + "\n")
		}
	}
	return b.String()
}

// clip cuts s to width display cells; with wrap on the row is left whole.
func clip(s string, width int, wrap bool) string {
	if wrap || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
