package tagchips

import (
	"strings"
	"testing"

	"filterdesk/internal/tui/state"
)

func TestViewNoColor(t *testing.T) {
	out := View([]state.Tag{
		{Kind: state.EDITED},
		{Kind: state.SYNTAX_ERROR},
		{Kind: state.ORIG_LEN, Value: 3},
		{Kind: state.MOD_LEN, Value: 5},
	}, true)
	for _, w := range []string{"[Edited]", "[Syntax error]", "[Orig 3]", "[Mod 5]"} {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in output: %s", w, out)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	if View(nil, true) != "" {
		t.Fatalf("expected empty output")
	}
}

func TestMatchLabels(t *testing.T) {
	out := View([]state.Tag{{Kind: state.MATCH}, {Kind: state.NO_MATCH}}, true)
	if out != "[Match] [No match]" {
		t.Fatalf("unexpected output: %q", out)
	}
}
