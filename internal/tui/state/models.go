package state

// EditorMode says which editor surface is active.
type EditorMode int

const (
	Plain EditorMode = iota
	Structured
)

func (m EditorMode) String() string {
	if m == Structured {
		return "structured"
	}
	return "plain"
}

// DiffMode controls the loaded-vs-edited pane.
type DiffMode int

const (
	DiffOff DiffMode = iota
	Unified
	SideBySide
)

// ResultKind is what the syntax result line currently shows.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultOK
	ResultError
)

// UIState holds cross-widget UI state used by status bar, diff, and editor.
type UIState struct {
	// Mode & capability
	Mode      EditorMode
	CanToggle bool
	ReadOnly  bool

	// View
	Diff DiffMode
	Wrap bool
	Help bool

	// Layout & scrolling
	Width   int
	MinCol  int
	ScrollV int

	// In-flight work
	Busy     bool // syntax check running; the check trigger is disabled
	Fetching bool

	// Syntax result line
	Result     ResultKind
	ResultText string

	// Notices and ephemeral messages
	Notice string
}
