package surface

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"filterdesk/internal/highlight"
	"filterdesk/internal/textpos"
)

const tabText = "    "

var (
	gutterStyle = lipgloss.NewStyle().Faint(true)
	caretStyle  = lipgloss.NewStyle().Reverse(true)
)

// Structured is the rich surface. It keeps its own row/column document,
// supports a selection and colours text through a highlight.Highlighter.
type Structured struct {
	lines    [][]rune
	row, col int
	anchor   *textpos.Position

	top, left     int
	width, height int

	focused  bool
	readOnly bool
	hl       *highlight.Highlighter
}

// NewStructured returns an empty structured surface. hl may be nil, in which
// case text renders uncoloured.
func NewStructured(width, height int, hl *highlight.Highlighter) *Structured {
	s := &Structured{lines: [][]rune{{}}, hl: hl}
	s.SetSize(width, height)
	return s
}

// SetHighlighter attaches the loaded highlighter.
func (s *Structured) SetHighlighter(hl *highlight.Highlighter) { s.hl = hl }

func (s *Structured) Value() string {
	parts := make([]string, len(s.lines))
	for i, l := range s.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

func (s *Structured) SetValue(v string) {
	rows := strings.Split(v, "\n")
	s.lines = make([][]rune, len(rows))
	for i, r := range rows {
		s.lines[i] = []rune(r)
	}
	s.anchor = nil
	s.row = len(s.lines) - 1
	s.col = len(s.lines[s.row])
	s.follow()
}

func (s *Structured) Focus() tea.Cmd { s.focused = true; return nil }
func (s *Structured) Blur()          { s.focused = false }
func (s *Structured) Focused() bool  { return s.focused }

func (s *Structured) Position() textpos.Position {
	return textpos.Position{Row: s.row, Column: s.col}
}

func (s *Structured) Cursor() Cursor {
	v := s.Value()
	off := textpos.PositionToIndex(v, s.Position())
	if s.anchor == nil {
		return Cursor{Offset: off, Anchor: off}
	}
	return Cursor{Offset: off, Anchor: textpos.PositionToIndex(v, *s.anchor)}
}

// IndexToPosition maps a flat offset onto the current document.
func (s *Structured) IndexToPosition(offset int) textpos.Position {
	return textpos.IndexToPosition(s.Value(), offset)
}

// NavigateTo moves the caret to (row, col), clamped, and drops the selection.
func (s *Structured) NavigateTo(row, col int) {
	s.anchor = nil
	s.row = clamp(row, 0, len(s.lines)-1)
	s.col = clamp(col, 0, len(s.lines[s.row]))
}

// ScrollToRow puts row at the top of the viewport where the document allows.
func (s *Structured) ScrollToRow(row int) {
	maxTop := len(s.lines) - s.height
	if maxTop < 0 {
		maxTop = 0
	}
	s.top = clamp(row, 0, maxTop)
	s.followColumn()
}

func (s *Structured) Reveal(offset int) {
	p := s.IndexToPosition(offset)
	s.NavigateTo(p.Row, p.Column)
	s.ScrollToRow(p.Row)
}

// SelectAll selects the whole document.
func (s *Structured) SelectAll() {
	s.anchor = &textpos.Position{}
	s.row = len(s.lines) - 1
	s.col = len(s.lines[s.row])
	s.follow()
}

func (s *Structured) InsertAtCursor(text string) {
	if s.readOnly {
		return
	}
	s.deleteSelection()
	ins := strings.Split(text, "\n")
	line := s.lines[s.row]
	head := append([]rune{}, line[:s.col]...)
	tail := append([]rune{}, line[s.col:]...)

	if len(ins) == 1 {
		s.lines[s.row] = append(append(head, []rune(ins[0])...), tail...)
		s.col += len([]rune(ins[0]))
		s.follow()
		return
	}
	added := make([][]rune, len(ins))
	added[0] = append(head, []rune(ins[0])...)
	for i := 1; i < len(ins)-1; i++ {
		added[i] = []rune(ins[i])
	}
	last := []rune(ins[len(ins)-1])
	added[len(ins)-1] = append(append([]rune{}, last...), tail...)

	rest := append([][]rune{}, s.lines[s.row+1:]...)
	s.lines = append(append(s.lines[:s.row], added...), rest...)
	s.row += len(ins) - 1
	s.col = len(last)
	s.follow()
}

func (s *Structured) SetSize(width, height int) {
	if width > 0 {
		s.width = width
	}
	if height > 0 {
		s.height = height
	}
	s.follow()
}

func (s *Structured) SetReadOnly(ro bool) { s.readOnly = ro }

func (s *Structured) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !s.focused || !editAllowed(s.readOnly, msg) {
		return nil
	}
	switch k.String() {
	case "left":
		s.move(s.left1)
	case "right":
		s.move(s.right1)
	case "up":
		s.move(func() { s.vertical(-1) })
	case "down":
		s.move(func() { s.vertical(1) })
	case "home":
		s.move(func() { s.col = 0 })
	case "end":
		s.move(func() { s.col = len(s.lines[s.row]) })
	case "pgup":
		s.move(func() { s.vertical(-s.height) })
	case "pgdown":
		s.move(func() { s.vertical(s.height) })
	case "ctrl+home":
		s.move(func() { s.row, s.col = 0, 0 })
	case "ctrl+end":
		s.move(func() { s.row = len(s.lines) - 1; s.col = len(s.lines[s.row]) })
	case "shift+left":
		s.extend(s.left1)
	case "shift+right":
		s.extend(s.right1)
	case "shift+up":
		s.extend(func() { s.vertical(-1) })
	case "shift+down":
		s.extend(func() { s.vertical(1) })
	case "shift+home":
		s.extend(func() { s.col = 0 })
	case "shift+end":
		s.extend(func() { s.col = len(s.lines[s.row]) })
	case "ctrl+a":
		s.SelectAll()
	case "enter":
		s.InsertAtCursor("\n")
	case "tab":
		s.InsertAtCursor(tabText)
	case "backspace":
		s.backspace()
	case "delete":
		s.deleteForward()
	default:
		if (k.Type == tea.KeyRunes || k.Type == tea.KeySpace) && !k.Alt {
			s.InsertAtCursor(string(k.Runes))
		}
	}
	return nil
}

func (s *Structured) move(f func()) {
	s.anchor = nil
	f()
	s.follow()
}

func (s *Structured) extend(f func()) {
	if s.anchor == nil {
		p := s.Position()
		s.anchor = &p
	}
	f()
	if *s.anchor == s.Position() {
		s.anchor = nil
	}
	s.follow()
}

func (s *Structured) left1() {
	if s.col > 0 {
		s.col--
	} else if s.row > 0 {
		s.row--
		s.col = len(s.lines[s.row])
	}
}

func (s *Structured) right1() {
	if s.col < len(s.lines[s.row]) {
		s.col++
	} else if s.row < len(s.lines)-1 {
		s.row++
		s.col = 0
	}
}

func (s *Structured) vertical(delta int) {
	s.row = clamp(s.row+delta, 0, len(s.lines)-1)
	s.col = clamp(s.col, 0, len(s.lines[s.row]))
}

func (s *Structured) backspace() {
	if s.deleteSelection() {
		s.follow()
		return
	}
	if s.col > 0 {
		l := s.lines[s.row]
		s.lines[s.row] = append(l[:s.col-1:s.col-1], l[s.col:]...)
		s.col--
	} else if s.row > 0 {
		prev := s.lines[s.row-1]
		s.col = len(prev)
		s.lines[s.row-1] = append(prev[:len(prev):len(prev)], s.lines[s.row]...)
		s.lines = append(s.lines[:s.row], s.lines[s.row+1:]...)
		s.row--
	}
	s.follow()
}

func (s *Structured) deleteForward() {
	if s.deleteSelection() {
		s.follow()
		return
	}
	l := s.lines[s.row]
	if s.col < len(l) {
		s.lines[s.row] = append(l[:s.col:s.col], l[s.col+1:]...)
	} else if s.row < len(s.lines)-1 {
		s.lines[s.row] = append(l[:len(l):len(l)], s.lines[s.row+1]...)
		s.lines = append(s.lines[:s.row+1], s.lines[s.row+2:]...)
	}
	s.follow()
}

// deleteSelection removes the selected span and reports whether there was one.
func (s *Structured) deleteSelection() bool {
	c := s.Cursor()
	start, end, ok := c.Selection()
	if !ok {
		s.anchor = nil
		return false
	}
	v := []rune(s.Value())
	rest := string(v[:start]) + string(v[end:])
	s.SetValue(rest)
	p := textpos.IndexToPosition(rest, start)
	s.NavigateTo(p.Row, p.Column)
	return true
}

// follow scrolls so the caret is inside the viewport.
func (s *Structured) follow() {
	if s.height > 0 {
		if s.row < s.top {
			s.top = s.row
		} else if s.row >= s.top+s.height {
			s.top = s.row - s.height + 1
		}
	}
	s.followColumn()
}

func (s *Structured) followColumn() {
	w := s.textWidth()
	if w <= 0 {
		return
	}
	if s.col < s.left {
		s.left = s.col
		return
	}
	line := s.lines[s.row]
	for s.left < s.col && runewidth.StringWidth(string(line[s.left:s.col]))+1 > w {
		s.left++
	}
}

func (s *Structured) gutterWidth() int {
	return len(fmt.Sprint(len(s.lines))) + 1
}

func (s *Structured) textWidth() int {
	return s.width - s.gutterWidth()
}

func (s *Structured) selected(row, col int) bool {
	if s.anchor == nil {
		return false
	}
	a, b := *s.anchor, s.Position()
	if b.Row < a.Row || (b.Row == a.Row && b.Column < a.Column) {
		a, b = b, a
	}
	after := row > a.Row || (row == a.Row && col >= a.Column)
	before := row < b.Row || (row == b.Row && col < b.Column)
	return after && before
}

func (s *Structured) View() string {
	var styled []highlight.Line
	if s.hl != nil {
		styled = s.hl.Lines(s.Value())
	}
	end := len(s.lines)
	if s.height > 0 && s.top+s.height < end {
		end = s.top + s.height
	}
	gw := s.gutterWidth()
	out := make([]string, 0, end-s.top)
	for r := s.top; r < end; r++ {
		var sl highlight.Line
		if r < len(styled) {
			sl = styled[r]
		}
		num := gutterStyle.Render(fmt.Sprintf("%*d ", gw-1, r+1))
		out = append(out, num+s.renderRow(r, sl))
	}
	for len(out) < s.height {
		out = append(out, gutterStyle.Render(strings.Repeat(" ", gw-1)+"~"))
	}
	return strings.Join(out, "\n")
}

func (s *Structured) renderRow(r int, sl highlight.Line) string {
	line := s.lines[r]
	bases := make([]lipgloss.Style, 0, len(line))
	for _, t := range sl {
		for range t.Text {
			bases = append(bases, t.Style)
		}
	}
	for len(bases) < len(line) {
		bases = append(bases, lipgloss.NewStyle())
	}

	left := 0
	if r == s.row {
		left = s.left
	}
	budget := s.textWidth()
	var b strings.Builder
	used := 0
	for c := left; c < len(line); c++ {
		ch := line[c]
		if ch == '\t' || unicode.IsControl(ch) {
			ch = ' '
		}
		w := runewidth.RuneWidth(ch)
		if budget > 0 && used+w > budget {
			break
		}
		st := bases[c]
		if s.selected(r, c) {
			st = st.Reverse(true)
		}
		if s.focused && r == s.row && c == s.col {
			st = caretStyle
		}
		b.WriteString(st.Render(string(ch)))
		used += w
	}
	if s.focused && r == s.row && s.col == len(line) {
		b.WriteString(caretStyle.Render(" "))
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
