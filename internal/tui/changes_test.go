package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filterdesk/internal/changeslist"
)

func boolp(b bool) *bool { return &b }

func sampleRows() []changeslist.Row {
	return []changeslist.Row{
		{ID: 1, Title: "Main Page", User: "Alice", Matched: boolp(true)},
		{ID: 2, Title: "Sandbox", User: "Bob", Summary: "spam link", Matched: boolp(false)},
		{ID: 3, Title: "Talk:Main Page", User: "Carol"},
	}
}

func press(m changesModel, keys ...tea.KeyMsg) changesModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(changesModel)
	}
	return m
}

func TestChangesViewShowsChips(t *testing.T) {
	m := newChangesModel(sampleRows(), changeslist.Annotator{TestFilter: "4"}, true)
	view := m.View()
	assert.Contains(t, view, "#1 Main Page")
	assert.Contains(t, view, "[Match]")
	assert.Contains(t, view, "[No match]")
	assert.NotContains(t, view, "examine")

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Contains(t, m.View(), "testfilter=4")
}

func TestChangesSearch(t *testing.T) {
	m := newChangesModel(sampleRows(), changeslist.Annotator{}, true)
	m = press(m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("main")},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.Equal(t, []int{0, 2}, m.searchIdxs)
	assert.Equal(t, 0, m.sel)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, 2, m.sel)
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, 0, m.sel)
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("N")})
	assert.Equal(t, 2, m.sel)
	assert.Contains(t, m.View(), "[2/2]")
}

func TestChangesSave(t *testing.T) {
	m := newChangesModel(sampleRows(), changeslist.Annotator{}, true)
	m.saveDir = t.TempDir()

	path, err := m.save()
	require.NoError(t, err)
	assert.Equal(t, m.saveDir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []changeslist.Annotated
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, []string{changeslist.ClassNoMatch}, got[1].Tags)
}

func TestChangesScrollsToSelection(t *testing.T) {
	var rows []changeslist.Row
	for i := 1; i <= 40; i++ {
		rows = append(rows, changeslist.Row{ID: int64(i), Title: "Page"})
	}
	m := newChangesModel(rows, changeslist.Annotator{}, true)
	m = press(m)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 15})
	m = next.(changesModel)

	view := m.View()
	assert.Contains(t, view, "#1 Page")
	assert.NotContains(t, view, "#11 Page")
	assert.LessOrEqual(t, len(strings.Split(strings.TrimRight(view, "\n"), "\n")), 15)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	view = m.View()
	assert.Contains(t, view, "> #40 Page")
	assert.NotContains(t, view, "#1 Page\n")
	assert.LessOrEqual(t, len(strings.Split(strings.TrimRight(view, "\n"), "\n")), 15)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, m.top)
	assert.Contains(t, m.View(), "> #1 Page")
}
