package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filterdesk/internal/changeslist"
	"filterdesk/internal/tui/views/changes"
)

type changesModel struct {
	rows    []changeslist.Annotated
	raw     []changeslist.Row
	sel     int
	top     int // first row shown
	width   int
	height  int
	markup  bool
	noColor bool
	status  string
	saveDir string
	// search state
	searching  bool
	searchBuf  string
	searchIdxs []int
	searchPos  int
}

// ShowChanges browses annotated change rows.
func ShowChanges(rows []changeslist.Row, a changeslist.Annotator, noColor bool) error {
	m := newChangesModel(rows, a, noColor)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newChangesModel(rows []changeslist.Row, a changeslist.Annotator, noColor bool) changesModel {
	return changesModel{
		rows:    a.AnnotateAll(rows),
		raw:     rows,
		noColor: noColor,
		saveDir: filepath.Join(".filterdesk", "changes"),
	}
}

func (m changesModel) Init() tea.Cmd { return nil }

func (m changesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		k := v.String()
		if m.searching {
			switch k {
			case "enter":
				m.searching = false
				m.computeSearch()
				m.jumpToResult(0)
			case "esc":
				m.searching = false
				m.searchBuf = ""
				m.searchIdxs = nil
				m.searchPos = 0
			default:
				if v.Type == tea.KeyBackspace || v.Type == tea.KeyCtrlH {
					if r := []rune(m.searchBuf); len(r) > 0 {
						m.searchBuf = string(r[:len(r)-1])
					}
				} else if v.Type == tea.KeyRunes || v.Type == tea.KeySpace {
					m.searchBuf += string(v.Runes)
				}
			}
			return m, nil
		}
		switch k {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "j", "down":
			if m.sel < len(m.rows)-1 {
				m.sel++
			}
		case "k", "up":
			if m.sel > 0 {
				m.sel--
			}
		case "G", "end":
			m.sel = len(m.rows) - 1
		case "g", "home":
			m.sel = 0
		case "m":
			m.markup = !m.markup
		case "/":
			m.searching = true
			m.searchBuf = ""
		case "n":
			if len(m.searchIdxs) > 0 {
				m.jumpToResult(m.searchPos + 1)
			}
		case "N":
			if len(m.searchIdxs) > 0 {
				m.jumpToResult(m.searchPos - 1)
			}
		case "s", "S":
			if path, err := m.save(); err == nil {
				m.status = "Saved annotations to " + path
			} else {
				m.status = "Save failed: " + err.Error()
			}
		}
	case tea.WindowSizeMsg:
		if v.Width > 0 {
			m.width = v.Width
		}
		if v.Height > 0 {
			m.height = v.Height
		}
	}
	m.ensureVisible()
	return m, nil
}

// changesChrome is the number of lines around the row list: title, blank,
// blank, key help and status.
const changesChrome = 5

func (m changesModel) rowLines(i int) int {
	n := 1
	if m.rows[i].Summary != "" {
		n++
	}
	if m.markup {
		n++
	}
	return n
}

// budget is how many lines the row list may use; 0 means unlimited.
func (m changesModel) budget() int {
	if m.height <= 0 {
		return 0
	}
	if b := m.height - changesChrome; b > 1 {
		return b
	}
	return 1
}

// ensureVisible scrolls so the selected row fits in the window.
func (m *changesModel) ensureVisible() {
	if m.sel < m.top {
		m.top = m.sel
	}
	b := m.budget()
	if b == 0 {
		m.top = 0
		return
	}
	for m.top < m.sel {
		used := 0
		for i := m.top; i <= m.sel; i++ {
			used += m.rowLines(i)
		}
		if used <= b {
			break
		}
		m.top++
	}
}

var matchStyle = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "228", Dark: "94"}).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"})

func (m changesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Changes (%d)", len(m.rows))) + "\n\n")
	if len(m.rows) == 0 {
		b.WriteString("  No changes.\n")
	}
	budget, used := m.budget(), 0
	for i := m.top; i < len(m.rows); i++ {
		r := m.rows[i]
		n := m.rowLines(i)
		if budget > 0 && used > 0 && used+n > budget {
			break
		}
		used += n
		hdr := fmt.Sprintf("#%d %s", r.ID, r.Title)
		if r.User != "" {
			hdr += " · " + r.User
		}
		if m.isHit(i) && !m.noColor {
			hdr = matchStyle.Render(hdr)
		}
		if i == m.sel {
			hdr = selStyle.Render("> " + hdr)
		} else {
			hdr = "  " + hdr
		}
		if chips := changes.RenderTags(m.raw[i], m.noColor); chips != "" {
			hdr += "  " + chips
		}
		b.WriteString(hdr + "\n")
		if r.Summary != "" {
			b.WriteString(faintStyle.Render("    "+r.Summary) + "\n")
		}
		if m.markup {
			b.WriteString(faintStyle.Render("    "+r.ExtraMarkup) + "\n")
		}
	}
	status := ""
	if m.searching {
		status = "  /" + m.searchBuf
	} else if len(m.searchIdxs) > 0 {
		status = fmt.Sprintf("  [%d/%d]", m.searchPos+1, len(m.searchIdxs))
	}
	b.WriteString("\n(j/k select) (m) markup (/) search (n/N) next (s) save (q) quit" + status + "\n")
	if strings.TrimSpace(m.status) != "" {
		b.WriteString(faintStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// computeSearch indexes rows whose title, user or summary contain the query.
func (m *changesModel) computeSearch() {
	m.searchIdxs = nil
	m.searchPos = 0
	q := strings.ToLower(strings.TrimSpace(m.searchBuf))
	if q == "" {
		return
	}
	for i, r := range m.rows {
		hay := strings.ToLower(r.Title + "\n" + r.User + "\n" + r.Summary)
		if strings.Contains(hay, q) {
			m.searchIdxs = append(m.searchIdxs, i)
		}
	}
}

func (m *changesModel) jumpToResult(pos int) {
	if len(m.searchIdxs) == 0 {
		return
	}
	if pos < 0 {
		pos = len(m.searchIdxs) - 1
	}
	if pos >= len(m.searchIdxs) {
		pos = 0
	}
	m.searchPos = pos
	m.sel = m.searchIdxs[pos]
}

func (m changesModel) isHit(i int) bool {
	for _, v := range m.searchIdxs {
		if v == i {
			return true
		}
	}
	return false
}

func (m changesModel) save() (string, error) {
	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(m.saveDir, time.Now().Format("20060102_150405")+".json")
	data, err := json.MarshalIndent(m.rows, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0o644)
}
