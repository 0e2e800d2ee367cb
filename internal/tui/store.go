package tui

import (
	"filterdesk/internal/tui/state"
	"filterdesk/internal/tui/surface"
)

// Store holds the authoritative filter text and the two surfaces that
// present it. The text is only ever replaced whole; nothing here triggers
// validation.
type Store struct {
	text     string
	surfaces [2]surface.Surface // indexed by state.EditorMode
	mode     func() state.EditorMode
}

func newStore(plain, structured surface.Surface, mode func() state.EditorMode) *Store {
	s := &Store{mode: mode}
	s.surfaces[state.Plain] = plain
	s.surfaces[state.Structured] = structured
	return s
}

func (s *Store) Text() string { return s.text }

// SetText replaces the text and writes it to both surfaces.
func (s *Store) SetText(text string) {
	s.text = text
	for _, sf := range s.surfaces {
		sf.SetValue(text)
	}
}

// SyncFromActive copies the active surface's content into the store and
// reports whether it differed.
func (s *Store) SyncFromActive() bool {
	v := s.Active().Value()
	changed := v != s.text
	s.text = v
	return changed
}

// PushToInactive writes the store's text into the hidden surface. A surface
// already holding the text is left alone so its caret survives.
func (s *Store) PushToInactive() {
	in := s.Inactive()
	if in.Value() != s.text {
		in.SetValue(s.text)
	}
}

func (s *Store) Active() surface.Surface { return s.surfaces[s.mode()] }

func (s *Store) Inactive() surface.Surface {
	if s.mode() == state.Plain {
		return s.surfaces[state.Structured]
	}
	return s.surfaces[state.Plain]
}

// Surface returns the surface for m.
func (s *Store) Surface(m state.EditorMode) surface.Surface { return s.surfaces[m] }
