package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filterdesk/internal/tui/views/snippets"
)

// idPrompt asks for a filter id to load.
type idPrompt struct {
	input  textinput.Model
	active bool
}

func newIDPrompt() idPrompt {
	ti := textinput.New()
	ti.Prompt = "Load filter #"
	ti.Placeholder = "id"
	ti.CharLimit = 12
	return idPrompt{input: ti}
}

func (p *idPrompt) open() tea.Cmd {
	p.active = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *idPrompt) close() {
	p.active = false
	p.input.Blur()
}

// update handles one key. submit is true with a positive id when enter was
// pressed on a usable value; blank or non-numeric input is dropped.
func (p *idPrompt) update(msg tea.KeyMsg) (id int, submit bool, cmd tea.Cmd) {
	switch msg.String() {
	case "enter":
		v := strings.TrimSpace(p.input.Value())
		p.close()
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return 0, false, nil
		}
		return n, true, nil
	case "esc":
		p.close()
		return 0, false, nil
	}
	p.input, cmd = p.input.Update(msg)
	return 0, false, cmd
}

func (p idPrompt) view() string {
	return p.input.View() + faintStyle.Render("   enter: load   esc: cancel")
}

// snippetPicker is the filter builder: a filterable list of snippets.
type snippetPicker struct {
	options []snippets.Option
	query   string
	cursor  int
	active  bool
}

func (p *snippetPicker) open() {
	p.active = true
	p.query = ""
	p.cursor = 0
}

func (p *snippetPicker) visible() []snippets.Option {
	q := strings.ToLower(strings.TrimSpace(p.query))
	if q == "" {
		return p.options
	}
	var out []snippets.Option
	for _, o := range p.options {
		if strings.Contains(strings.ToLower(o.Label), q) || strings.Contains(strings.ToLower(o.Group), q) {
			out = append(out, o)
		}
	}
	return out
}

// update handles one key and returns the chosen snippet text, if any.
func (p *snippetPicker) update(msg tea.KeyMsg) (text string, chosen bool) {
	opts := p.visible()
	switch msg.String() {
	case "esc", "ctrl+b":
		p.active = false
	case "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down":
		if p.cursor < len(opts)-1 {
			p.cursor++
		}
	case "enter":
		p.active = false
		if p.cursor < len(opts) {
			return opts[p.cursor].Text, true
		}
	default:
		if msg.Type == tea.KeyBackspace || msg.Type == tea.KeyCtrlH {
			if r := []rune(p.query); len(r) > 0 {
				p.query = string(r[:len(r)-1])
			}
		} else if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			p.query += string(msg.Runes)
		}
		p.cursor = 0
	}
	return "", false
}

func (p snippetPicker) view(height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filter builder") + "  " + faintStyle.Render("filter: "+p.query) + "\n")
	opts := p.visible()
	if len(opts) == 0 {
		b.WriteString("  (no matches)\n")
	}
	if height <= 0 {
		height = 10
	}
	start := 0
	if p.cursor >= height {
		start = p.cursor - height + 1
	}
	for i := start; i < len(opts) && i < start+height; i++ {
		o := opts[i]
		line := fmt.Sprintf("  %-12s %s", o.Group, o.Label)
		if i == p.cursor {
			line = selStyle.Render(fmt.Sprintf("> %-12s %s", o.Group, o.Label))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(faintStyle.Render("type to filter   enter: insert   esc: close") + "\n")
	return b.String()
}
