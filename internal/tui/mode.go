package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"filterdesk/internal/config"
	"filterdesk/internal/highlight"
	"filterdesk/internal/tui/state"
	"filterdesk/internal/tui/surface"
)

// capabilityMsg reports the outcome of loading the structured surface's
// highlighter.
type capabilityMsg struct {
	hl  *highlight.Highlighter
	err error
}

// CapabilityLoader builds the structured surface's highlighter.
type CapabilityLoader func(config.Editor) (*highlight.Highlighter, error)

// LoadHighlighter is the default CapabilityLoader.
func LoadHighlighter(c config.Editor) (*highlight.Highlighter, error) {
	return highlight.Load(c.Grammar, c.Style)
}

// ModeController owns the editor mode and the switch between surfaces.
type ModeController struct {
	store      *Store
	ui         *state.UIState
	structured *surface.Structured
	log        *slog.Logger
}

// CanToggle is false once the structured capability has failed or was
// disabled by configuration.
func (m *ModeController) CanToggle() bool { return m.ui.CanToggle }

// Visible reports whether the surface for mode is shown.
func (m *ModeController) Visible(mode state.EditorMode) bool {
	return state.Visible(*m.ui, mode)
}

// Toggle swaps the active surface. The text travels with the switch and the
// newly shown surface takes focus.
func (m *ModeController) Toggle() tea.Cmd {
	if !m.ui.CanToggle {
		*m.ui = state.ToggleMode(*m.ui)
		return nil
	}
	m.store.SyncFromActive()
	m.store.Active().Blur()
	m.store.PushToInactive()
	*m.ui = state.ToggleMode(*m.ui)
	m.log.Debug("editor mode", "mode", m.ui.Mode.String())
	return m.store.Active().Focus()
}

// Degrade falls back to the plain surface for the rest of the session.
func (m *ModeController) Degrade() tea.Cmd {
	if m.ui.Mode == state.Plain {
		*m.ui = state.Degrade(*m.ui)
		return nil
	}
	m.store.SyncFromActive()
	m.store.Active().Blur()
	m.store.PushToInactive()
	*m.ui = state.Degrade(*m.ui)
	return m.store.Active().Focus()
}

func loadCapability(load CapabilityLoader, c config.Editor) tea.Cmd {
	return func() tea.Msg {
		hl, err := load(c)
		return capabilityMsg{hl: hl, err: err}
	}
}

// resolve applies a capability result. Success switches to the structured
// surface; failure degrades for good.
func (m *ModeController) resolve(msg capabilityMsg) tea.Cmd {
	if msg.err != nil || msg.hl == nil {
		m.log.Warn("structured editor unavailable", "err", msg.err)
		return m.Degrade()
	}
	m.structured.SetHighlighter(msg.hl)
	m.ui.CanToggle = true
	if m.ui.Mode == state.Structured {
		return nil
	}
	return m.Toggle()
}
