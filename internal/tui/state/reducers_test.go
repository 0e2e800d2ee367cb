package state

import "testing"

func TestToggleModeTwiceIsIdentity(t *testing.T) {
	s := UIState{Mode: Structured, CanToggle: true}
	s = ToggleMode(s)
	if s.Mode != Plain {
		t.Fatalf("expected Plain after one toggle")
	}
	s = ToggleMode(s)
	if s.Mode != Structured {
		t.Fatalf("expected Structured after two toggles")
	}
}

func TestToggleModeRespectsCapability(t *testing.T) {
	s := UIState{Mode: Plain, CanToggle: false}
	s = ToggleMode(s)
	if s.Mode != Plain || s.Notice == "" {
		t.Fatalf("expected Plain with notice when toggle unavailable")
	}
}

func TestDegradeIsOneWay(t *testing.T) {
	s := Degrade(UIState{Mode: Structured, CanToggle: true})
	if s.Mode != Plain || s.CanToggle {
		t.Fatalf("expected Plain without toggle")
	}
	s = ToggleMode(s)
	if s.Mode != Plain {
		t.Fatalf("degraded state must stay Plain")
	}
}

func TestVisibleIsExclusive(t *testing.T) {
	for _, m := range []EditorMode{Plain, Structured} {
		s := UIState{Mode: m}
		if Visible(s, Plain) == Visible(s, Structured) {
			t.Fatalf("exactly one surface must be visible in mode %v", m)
		}
	}
}

func TestCycleDiff(t *testing.T) {
	s := UIState{}
	want := []DiffMode{Unified, SideBySide, DiffOff}
	for _, w := range want {
		s = CycleDiff(s)
		if s.Diff != w {
			t.Fatalf("expected %v, got %v", w, s.Diff)
		}
	}
}

func TestResizeFallbackToUnified(t *testing.T) {
	s := UIState{Diff: SideBySide, MinCol: 20}
	s = Resize(s, 30) // threshold = 2*20+3 = 43; 30 < 43 => unified
	if s.Diff != Unified {
		t.Fatalf("expected Unified after resize fallback")
	}
	if s.Notice == "" {
		t.Fatalf("expected fallback notice to be set")
	}
}

func TestScrolls(t *testing.T) {
	s := UIState{}
	s = ScrollDown(s, true)
	if s.ScrollV == 0 {
		t.Fatalf("expected scroll to increase")
	}
	s = ScrollUp(s, true)
	if s.ScrollV != 0 {
		t.Fatalf("expected scroll to return to 0")
	}
	s = ScrollUp(s, false)
	if s.ScrollV != 0 {
		t.Fatalf("scroll must not go negative")
	}
}

func TestCheckLifecycle(t *testing.T) {
	s := BeginCheck(UIState{})
	if !s.Busy {
		t.Fatalf("expected busy")
	}
	s = EndCheck(s, ResultOK, "fine")
	if s.Busy || s.Result != ResultOK {
		t.Fatalf("expected idle with ok result")
	}
	s = TextChanged(s)
	if s.Result != ResultNone || s.ResultText != "" {
		t.Fatalf("ok result must clear on edit")
	}
	s = EndCheck(s, ResultError, "bad")
	s = TextChanged(s)
	if s.Result != ResultError {
		t.Fatalf("error result must survive edits")
	}
}
