package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"filterdesk/internal/config"
	"filterdesk/internal/httpx"
	"filterdesk/internal/mwapi"
	"filterdesk/internal/textpos"
	"filterdesk/internal/tui/state"
)

// Validator checks filter text on the server.
type Validator interface {
	CheckSyntax(ctx context.Context, text string) (mwapi.Result, error)
}

// busyGuard owns the busy flag. acquire fails while a check is in flight;
// every syntaxResultMsg releases it.
type busyGuard struct{ ui *state.UIState }

func (g busyGuard) acquire() bool {
	if g.ui.Busy {
		return false
	}
	*g.ui = state.BeginCheck(*g.ui)
	return true
}

func (g busyGuard) release() { g.ui.Busy = false }

// syntaxResultMsg is delivered exactly once per check that was started.
type syntaxResultMsg struct {
	text   string
	result mwapi.Result
	err    error
}

// CheckSyntax validates the current text. It returns nil while another
// check is running.
func (w *Workspace) CheckSyntax() tea.Cmd {
	if w.store.SyncFromActive() {
		w.ui = state.TextChanged(w.ui)
	}
	if !w.busy.acquire() {
		return nil
	}
	text := w.store.Text()
	w.log.Info("syntax check", "chars", textpos.Len(text))
	return tea.Batch(w.spin.Tick, runCheck(w.validator, text))
}

func runCheck(v Validator, text string) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = syntaxResultMsg{text: text, err: fmt.Errorf("syntax check panicked: %v", r)}
			}
		}()
		if v == nil {
			return syntaxResultMsg{text: text, err: errors.New("no validation endpoint configured")}
		}
		res, err := v.CheckSyntax(context.Background(), text)
		return syntaxResultMsg{text: text, result: res, err: err}
	}
}

func (w *Workspace) handleSyntaxResult(msg syntaxResultMsg) tea.Cmd {
	w.busy.release()

	switch {
	case msg.err != nil:
		w.log.Error("syntax check failed", "err", msg.err)
		w.ui = state.EndCheck(w.ui, state.ResultError, w.failureMessage(msg.err))
		return nil
	case msg.result.OK():
		w.log.Info("syntax ok")
		w.ui = state.EndCheck(w.ui, state.ResultOK, w.cfg.Messages.SyntaxOK)
		return nil
	default:
		se := msg.result.Err
		w.log.Info("syntax error", "offset", se.Offset, "message", se.Message)
		w.ui = state.EndCheck(w.ui, state.ResultError, config.Expand(w.cfg.Messages.SyntaxError, se.Message))
		return w.Locate(se.Offset)
	}
}

// failureMessage picks the HTTP message for transport-level failures and
// the unknown-error message for everything else.
func (w *Workspace) failureMessage(err error) string {
	var (
		se *httpx.StatusError
		ue *url.Error
		ne net.Error
	)
	if errors.As(err, &se) || errors.As(err, &ue) || errors.As(err, &ne) || errors.Is(err, context.DeadlineExceeded) {
		return config.Expand(w.cfg.Messages.HTTPError, err.Error())
	}
	return config.Expand(w.cfg.Messages.UnknownError, err.Error())
}
