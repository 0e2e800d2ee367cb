package state

// ToggleMode switches between the structured and plain surfaces. It is a
// no-op with a notice once the structured capability is gone.
func ToggleMode(s UIState) UIState {
	if !s.CanToggle {
		s.Notice = "Structured editor unavailable"
		return s
	}
	if s.Mode == Plain {
		s.Mode = Structured
	} else {
		s.Mode = Plain
	}
	s.Notice = "[" + s.Mode.String() + "]"
	return s
}

// Degrade is the one-way fallback taken when the structured capability fails.
func Degrade(s UIState) UIState {
	s.Mode = Plain
	s.CanToggle = false
	return s
}

// Visible reports whether the surface for m is shown. Exactly one mode is
// visible for any state.
func Visible(s UIState, m EditorMode) bool {
	return s.Mode == m
}

// CycleDiff walks off → unified → side-by-side → off.
func CycleDiff(s UIState) UIState {
	switch s.Diff {
	case DiffOff:
		s.Diff = Unified
	case Unified:
		s.Diff = SideBySide
	default:
		s.Diff = DiffOff
	}
	s.ScrollV = 0
	return Resize(s, s.Width)
}

// ToggleWrap flips the Wrap flag and returns a new state copy.
func ToggleWrap(s UIState) UIState {
	s.Wrap = !s.Wrap
	return s
}

// ToggleHelp shows or hides the help overlay.
func ToggleHelp(s UIState) UIState {
	s.Help = !s.Help
	return s
}

// Resize updates width and sets a fallback notice if too narrow for side-by-side.
// Threshold heuristic: need at least 2*MinCol plus 3 chars for separator/gutters.
func Resize(s UIState, width int) UIState {
	s.Width = width
	threshold := 2*s.MinCol + 3
	if s.Diff == SideBySide && s.Width > 0 && s.Width < threshold {
		s.Diff = Unified
		s.Notice = "Narrow width: using unified view"
	}
	return s
}

// ScrollUp and ScrollDown move the diff pane.
func ScrollUp(s UIState, fast bool) UIState {
	delta := 1
	if fast {
		delta = 8
	}
	if s.ScrollV >= delta {
		s.ScrollV -= delta
	} else {
		s.ScrollV = 0
	}
	return s
}

func ScrollDown(s UIState, fast bool) UIState {
	delta := 1
	if fast {
		delta = 8
	}
	s.ScrollV += delta
	return s
}

// BeginCheck marks a syntax check in flight.
func BeginCheck(s UIState) UIState {
	s.Busy = true
	return s
}

// EndCheck records the outcome of a check and re-enables the trigger.
func EndCheck(s UIState, kind ResultKind, text string) UIState {
	s.Busy = false
	s.Result = kind
	s.ResultText = text
	return s
}

// TextChanged hides a standing "ok" result; errors stay until the next check.
func TextChanged(s UIState) UIState {
	if s.Result == ResultOK {
		s.Result = ResultNone
		s.ResultText = ""
	}
	return s
}
