package surface

import (
	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"filterdesk/internal/textpos"
)

// sanitize mirrors what the textarea does to inserted text.
var sanitize = runeutil.NewSanitizer(runeutil.ReplaceTabs("    "), runeutil.ReplaceNewlines("\n"))

// Plain is the fallback surface: a bubbles textarea addressed by flat
// offset. It has no selection.
//
// The textarea rewrites tabs, carriage returns and other control runes.
// Plain keeps the text it was given and replays the user's edits onto it,
// so Value returns that text unchanged until those runes are edited over.
// Offsets and positions are in terms of Value, not of what is on screen.
type Plain struct {
	ta       textarea.Model
	readOnly bool

	orig  []rune   // text as given to SetValue
	exp   [][]rune // what each rune of orig became in the textarea
	shown []rune   // textarea content right after SetValue

	lastShown string
	lastValue string
}

// NewPlain returns an empty plain surface.
func NewPlain(width, height int) *Plain {
	ta := textarea.New()
	ta.Prompt = "  "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Placeholder = "Filter conditions…"
	p := &Plain{ta: ta}
	p.SetSize(width, height)
	return p
}

func (p *Plain) SetValue(s string) {
	p.ta.SetValue(s)
	p.orig = []rune(s)
	p.exp = make([][]rune, len(p.orig))
	var all []rune
	for i, r := range p.orig {
		p.exp[i] = expand(r)
		all = append(all, p.exp[i]...)
	}
	p.shown = []rune(p.ta.Value())
	if string(all) != string(p.shown) {
		// the textarea did something unexpected; fall back to its content
		p.orig = p.shown
		p.exp = make([][]rune, len(p.shown))
		for i, r := range p.shown {
			p.exp[i] = []rune{r}
		}
	}
	p.lastShown = string(p.shown)
	p.lastValue = s
}

func (p *Plain) Value() string {
	cur := p.ta.Value()
	if cur != p.lastShown {
		p.lastValue = p.rebuild([]rune(cur))
		p.lastShown = cur
	}
	return p.lastValue
}

// rebuild applies the difference between shown and cur to orig. Runes of
// orig whose expansion is untouched are kept verbatim; partly edited ones
// keep only what is left on screen.
func (p *Plain) rebuild(cur []rune) string {
	diffs := dmp.New().DiffMainRunes(p.shown, cur, false)
	kept := make([]bool, len(p.shown))
	ins := map[int][]rune{}
	pos := 0
	for _, d := range diffs {
		rs := []rune(d.Text)
		switch d.Type {
		case dmp.DiffEqual:
			for i := range rs {
				kept[pos+i] = true
			}
			pos += len(rs)
		case dmp.DiffDelete:
			pos += len(rs)
		case dmp.DiffInsert:
			ins[pos] = append(ins[pos], rs...)
		}
	}

	out := make([]rune, 0, len(cur))
	flush := func(at int) {
		if rs, ok := ins[at]; ok {
			out = append(out, rs...)
			delete(ins, at)
		}
	}
	s := 0
	for i, r := range p.orig {
		w := len(p.exp[i])
		if w == 0 {
			flush(s)
			deleted := s > 0 && s < len(kept) && !kept[s-1] && !kept[s]
			if !deleted {
				out = append(out, r)
			}
			continue
		}
		whole := true
		for j := s; j < s+w; j++ {
			if !kept[j] || (j > s && len(ins[j]) > 0) {
				whole = false
				break
			}
		}
		if whole {
			flush(s)
			out = append(out, r)
		} else {
			for j := s; j < s+w; j++ {
				flush(j)
				if kept[j] {
					out = append(out, p.shown[j])
				}
			}
		}
		s += w
	}
	flush(len(p.shown))
	return string(out)
}

func expand(r rune) []rune {
	return sanitize.Sanitize([]rune{r})
}

// screenOffset converts an offset into val to an offset into the textarea.
func screenOffset(val string, offset int) int {
	n := 0
	for i, r := range []rune(val) {
		if i >= offset {
			break
		}
		n += len(expand(r))
	}
	return n
}

// valueOffset is the inverse of screenOffset. A screen offset inside an
// expanded rune resolves to that rune.
func valueOffset(val string, screen int) int {
	n := 0
	rs := []rune(val)
	for i, r := range rs {
		if n >= screen {
			return i
		}
		n += len(expand(r))
	}
	return len(rs)
}

func (p *Plain) Focus() tea.Cmd { return p.ta.Focus() }
func (p *Plain) Blur()          { p.ta.Blur() }
func (p *Plain) Focused() bool  { return p.ta.Focused() }

func (p *Plain) screenPosition() textpos.Position {
	li := p.ta.LineInfo()
	return textpos.Position{Row: p.ta.Line(), Column: li.StartColumn + li.ColumnOffset}
}

func (p *Plain) Position() textpos.Position {
	return textpos.IndexToPosition(p.Value(), p.Cursor().Offset)
}

func (p *Plain) Cursor() Cursor {
	screen := textpos.PositionToIndex(p.ta.Value(), p.screenPosition())
	off := valueOffset(p.Value(), screen)
	return Cursor{Offset: off, Anchor: off}
}

func (p *Plain) InsertAtCursor(s string) {
	if p.readOnly {
		return
	}
	p.ta.InsertString(s)
}

// Reveal places the caret at offset. The textarea has no row setter, so the
// caret walks rows until it reaches the target.
func (p *Plain) Reveal(offset int) {
	screen := p.ta.Value()
	pos := textpos.IndexToPosition(screen, screenOffset(p.Value(), offset))

	guard := textpos.Len(screen) + p.ta.LineCount() + 1
	for i := 0; p.ta.Line() > pos.Row && i < guard; i++ {
		p.ta.CursorUp()
	}
	for i := 0; p.ta.Line() < pos.Row && i < guard; i++ {
		p.ta.CursorDown()
	}
	p.ta.SetCursor(pos.Column)
}

func (p *Plain) SetSize(width, height int) {
	if width > 0 {
		p.ta.SetWidth(width)
	}
	if height > 0 {
		p.ta.SetHeight(height)
	}
}

func (p *Plain) SetReadOnly(ro bool) { p.readOnly = ro }

func (p *Plain) Update(msg tea.Msg) tea.Cmd {
	if !editAllowed(p.readOnly, msg) {
		return nil
	}
	var cmd tea.Cmd
	p.ta, cmd = p.ta.Update(msg)
	return cmd
}

func (p *Plain) View() string { return p.ta.View() }
