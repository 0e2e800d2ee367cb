package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"filterdesk/internal/textpos"
	"filterdesk/internal/tui/state"
)

// Locate moves the active surface's caret to a character offset of the
// current text and focuses it. Out-of-range offsets are clamped.
func (w *Workspace) Locate(offset int) tea.Cmd {
	offset = textpos.Clamp(offset, textpos.Len(w.store.Text()))
	s := w.store.Active()
	s.Reveal(offset)
	return s.Focus()
}

// InsertAtCursor inserts snippet and a trailing space at the caret,
// replacing any selection.
func (w *Workspace) InsertAtCursor(snippet string) tea.Cmd {
	s := w.store.Active()
	if w.ui.ReadOnly {
		return s.Focus()
	}
	s.InsertAtCursor(snippet + " ")
	if w.store.SyncFromActive() {
		w.ui = state.TextChanged(w.ui)
	}
	return s.Focus()
}

// Fetcher loads a stored filter's pattern by id.
type Fetcher interface {
	FetchFilter(ctx context.Context, id int) (pattern string, found bool, err error)
}

type filterFetchedMsg struct {
	id      int
	pattern string
	found   bool
	err     error
}

// FetchFilter loads filter id into both surfaces. Misses and failures leave
// the text alone and show nothing.
func (w *Workspace) FetchFilter(id int) tea.Cmd {
	if w.fetcher == nil {
		w.log.Debug("fetch skipped: no endpoint", "id", id)
		return nil
	}
	w.ui.Fetching = true
	w.log.Info("fetch filter", "id", id)
	return tea.Batch(w.spin.Tick, runFetch(w.fetcher, id))
}

func runFetch(f Fetcher, id int) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = filterFetchedMsg{id: id, err: fmt.Errorf("fetch panicked: %v", r)}
			}
		}()
		pattern, found, err := f.FetchFilter(context.Background(), id)
		return filterFetchedMsg{id: id, pattern: pattern, found: found, err: err}
	}
}

func (w *Workspace) handleFetched(msg filterFetchedMsg) {
	w.ui.Fetching = false
	switch {
	case msg.err != nil:
		w.log.Debug("fetch failed", "id", msg.id, "err", msg.err)
	case !msg.found:
		w.log.Debug("filter not found", "id", msg.id)
	default:
		w.store.SetText(msg.pattern)
		w.loaded = msg.pattern
		w.ui = state.TextChanged(w.ui)
	}
}
