// Package tui is the interactive filter workspace: two editor surfaces over
// one filter text, server-side syntax checks with error location, the filter
// builder and loading filters by id.
package tui

import (
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"filterdesk/internal/config"
	"filterdesk/internal/tui/state"
	"filterdesk/internal/tui/surface"
	"filterdesk/internal/tui/util"
	"filterdesk/internal/tui/views/help"
	"filterdesk/internal/tui/views/snippets"
	"filterdesk/internal/tui/widgets/diff"
	"filterdesk/internal/tui/widgets/editor"
	"filterdesk/internal/tui/widgets/statusbar"
	"filterdesk/internal/tui/widgets/tagchips"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Outcome is what an editing session produced.
type Outcome struct {
	Text  string
	Saved bool
}

// Options configures a Workspace. Config is taken by value; nothing in the
// workspace reads global state.
type Options struct {
	Config     config.Config
	Text       string // initial text, also the diff baseline
	Validator  Validator
	Fetcher    Fetcher
	Capability CapabilityLoader   // nil uses LoadHighlighter
	Clipboard  func(string) error // nil uses the system clipboard
	Logger     *slog.Logger
	NoColor    bool
}

// Workspace is the bubbletea model for one editing session.
type Workspace struct {
	cfg config.Config
	ui  state.UIState

	store      *Store
	modes      *ModeController
	plain      *surface.Plain
	structured *surface.Structured

	busy busyGuard
	spin spinner.Model

	validator  Validator
	fetcher    Fetcher
	capability CapabilityLoader
	capLoading bool
	clip       func(string) error
	log        *slog.Logger

	loaded string
	prompt idPrompt
	picker snippetPicker

	height  int
	noColor bool
	outcome Outcome
}

// New builds a workspace showing the plain surface. Init starts loading the
// structured surface when configuration allows it.
func New(opts Options) *Workspace {
	cfg := opts.Config
	d := config.Default()
	if cfg.Editor.Width <= 0 {
		cfg.Editor.Width = d.Editor.Width
	}
	if cfg.Editor.Height <= 0 {
		cfg.Editor.Height = d.Editor.Height
	}
	if cfg.Messages == (config.Messages{}) {
		cfg.Messages = d.Messages
	}

	w := &Workspace{
		cfg:        cfg,
		validator:  opts.Validator,
		fetcher:    opts.Fetcher,
		capability: opts.Capability,
		clip:       opts.Clipboard,
		log:        opts.Logger,
		loaded:     opts.Text,
		prompt:     newIDPrompt(),
		picker:     snippetPicker{options: snippets.RenderOptions(cfg.Snippets)},
		spin:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		noColor:    util.NoColor(opts.NoColor),
		outcome:    Outcome{Text: opts.Text},
	}
	if w.capability == nil {
		w.capability = LoadHighlighter
	}
	if w.clip == nil {
		w.clip = clipboard.WriteAll
	}
	if w.log == nil {
		w.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w.ui = state.UIState{Mode: state.Plain, ReadOnly: cfg.Editor.ReadOnly, MinCol: 20}
	w.plain = surface.NewPlain(cfg.Editor.Width, cfg.Editor.Height)
	w.structured = surface.NewStructured(cfg.Editor.Width, cfg.Editor.Height, nil)
	w.plain.SetReadOnly(cfg.Editor.ReadOnly)
	w.structured.SetReadOnly(cfg.Editor.ReadOnly)

	w.store = newStore(w.plain, w.structured, func() state.EditorMode { return w.ui.Mode })
	w.store.SetText(opts.Text)
	w.modes = &ModeController{store: w.store, ui: &w.ui, structured: w.structured, log: w.log}
	w.busy = busyGuard{ui: &w.ui}

	if cfg.Editor.Structured {
		w.capLoading = true
	} else {
		w.modes.Degrade()
	}
	w.plain.Focus()
	return w
}

// Run drives a workspace until the user saves or quits.
func Run(opts Options) (Outcome, error) {
	w := New(opts)
	p := tea.NewProgram(w, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return Outcome{Text: opts.Text}, err
	}
	return w.outcome, nil
}

func (w *Workspace) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if w.capLoading {
		cmds = append(cmds, loadCapability(w.capability, w.cfg.Editor))
	}
	return tea.Batch(cmds...)
}

// Text is the current filter text.
func (w *Workspace) Text() string { return w.store.Text() }

// State is a copy of the UI state.
func (w *Workspace) State() state.UIState { return w.ui }

func (w *Workspace) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.resize(msg.Width, msg.Height)
		return w, nil
	case capabilityMsg:
		w.capLoading = false
		return w, w.modes.resolve(msg)
	case syntaxResultMsg:
		return w, w.handleSyntaxResult(msg)
	case filterFetchedMsg:
		w.handleFetched(msg)
		return w, nil
	case spinner.TickMsg:
		if !w.ui.Busy && !w.ui.Fetching {
			return w, nil
		}
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return w, cmd
	case tea.KeyMsg:
		return w, w.handleKey(msg)
	}
	return w, w.store.Active().Update(msg)
}

func (w *Workspace) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()

	if w.ui.Help {
		if k == "f1" || k == "esc" || k == "q" {
			w.ui = state.ToggleHelp(w.ui)
		}
		return nil
	}
	if w.prompt.active {
		id, ok, cmd := w.prompt.update(msg)
		if ok {
			return tea.Batch(cmd, w.store.Active().Focus(), w.FetchFilter(id))
		}
		if !w.prompt.active {
			return tea.Batch(cmd, w.store.Active().Focus())
		}
		return cmd
	}
	if w.picker.active {
		text, ok := w.picker.update(msg)
		if ok {
			return w.InsertAtCursor(text)
		}
		if !w.picker.active {
			return w.store.Active().Focus()
		}
		return nil
	}

	w.ui.Notice = ""
	switch k {
	case "ctrl+c", "esc":
		w.store.SyncFromActive()
		w.outcome = Outcome{Text: w.store.Text()}
		return tea.Quit
	case "ctrl+s":
		w.store.SyncFromActive()
		w.outcome = Outcome{Text: w.store.Text(), Saved: true}
		w.log.Info("saved", "chars", len([]rune(w.outcome.Text)))
		return tea.Quit
	case "ctrl+t":
		if w.capLoading {
			w.ui.Notice = "Structured editor loading…"
			return nil
		}
		return w.modes.Toggle()
	case "ctrl+k":
		return w.CheckSyntax()
	case "ctrl+b":
		if w.ui.ReadOnly {
			w.ui.Notice = "Read-only"
			return nil
		}
		w.store.Active().Blur()
		w.picker.open()
		return nil
	case "ctrl+o":
		w.store.Active().Blur()
		return w.prompt.open()
	case "ctrl+d":
		w.ui = state.CycleDiff(w.ui)
		w.layout()
		return nil
	case "ctrl+w":
		w.ui = state.ToggleWrap(w.ui)
		return nil
	case "alt+up":
		w.ui = state.ScrollUp(w.ui, false)
		return nil
	case "alt+down":
		w.ui = state.ScrollDown(w.ui, false)
		return nil
	case "alt+pgup":
		w.ui = state.ScrollUp(w.ui, true)
		return nil
	case "alt+pgdown":
		w.ui = state.ScrollDown(w.ui, true)
		return nil
	case "ctrl+y":
		return w.Export()
	case "f1":
		w.ui = state.ToggleHelp(w.ui)
		return nil
	}

	cmd := w.store.Active().Update(msg)
	if w.store.SyncFromActive() {
		w.ui = state.TextChanged(w.ui)
	}
	return cmd
}

// Export copies the current text to the clipboard.
func (w *Workspace) Export() tea.Cmd {
	w.store.SyncFromActive()
	if err := w.clip(w.store.Text()); err != nil {
		w.log.Warn("clipboard", "err", err)
		w.ui.Notice = "Copy failed: " + err.Error()
		return nil
	}
	w.ui.Notice = "Copied filter to clipboard"
	return nil
}

func (w *Workspace) resize(width, height int) {
	w.ui = state.Resize(w.ui, width)
	w.height = height
	w.layout()
}

// layout splits the height between the editor and the diff pane.
func (w *Workspace) layout() {
	width := w.ui.Width
	if width <= 0 {
		width = w.cfg.Editor.Width
	}
	h := w.cfg.Editor.Height
	if w.height > 0 {
		h = w.height - 8
		if w.ui.Diff != state.DiffOff {
			h /= 2
		}
	}
	if h < 3 {
		h = 3
	}
	w.plain.SetSize(width, h)
	w.structured.SetSize(width, h)
}

func (w *Workspace) diffHeight() int {
	if w.height <= 0 {
		return 0
	}
	h := (w.height - 8) / 2
	if h < 3 {
		h = 3
	}
	return h
}

func (w *Workspace) View() string {
	if w.ui.Help {
		return help.RenderHelp(w.ui)
	}
	pal := util.DefaultPalette()
	var b strings.Builder
	b.WriteString(titleStyle.Render("filterdesk") + "\n")
	b.WriteString(editor.NewEditor().View(w.ui, w.store.Active().View()))

	switch {
	case w.picker.active:
		b.WriteString(w.picker.view(8))
	case w.prompt.active:
		b.WriteString(w.prompt.view() + "\n")
	}

	if w.ui.Result != state.ResultNone {
		st := lipgloss.NewStyle().Foreground(pal.Success)
		if w.ui.Result == state.ResultError {
			st = lipgloss.NewStyle().Foreground(pal.Danger)
		}
		text := w.ui.ResultText
		if w.ui.Width > 0 {
			text = wordwrap.String(text, w.ui.Width)
		}
		if w.noColor {
			b.WriteString(text + "\n")
		} else {
			b.WriteString(st.Render(text) + "\n")
		}
	}

	tags := util.ComputeTags(w.loaded, w.store.Text(), w.ui.Result, w.ui.ReadOnly)
	b.WriteString(tagchips.View(tags, w.noColor) + "\n")

	if w.ui.Diff != state.DiffOff {
		b.WriteString("\n" + diff.NewDiffView().View(w.ui, w.loaded, w.store.Text(), w.diffHeight()))
	}
	b.WriteString(statusbar.NewStatusBar().View(w.ui, w.store.Active().Position(), w.spin.View()))
	return b.String()
}
