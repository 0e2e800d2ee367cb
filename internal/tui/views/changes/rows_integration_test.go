package changes

import (
	"strings"
	"testing"

	"filterdesk/internal/changeslist"
	"filterdesk/internal/tui/state"
)

func TestRenderTagsIntegration(t *testing.T) {
	yes := true
	row := changeslist.Row{ID: 3, Matched: &yes}
	out := RenderTags(row, true)
	if !strings.Contains(out, "[Match]") {
		t.Fatalf("expected match chip in output: %s", out)
	}
	if RenderTags(changeslist.Row{ID: 4}, true) != "" {
		t.Fatalf("untested rows must render no chip")
	}
}

func TestKindsFollowAnnotation(t *testing.T) {
	no := false
	a := changeslist.Annotator{}.Annotate(changeslist.Row{ID: 1, Matched: &no})
	k := Kinds(a)
	if len(k) != 1 || k[0] != state.NO_MATCH {
		t.Fatalf("expected NO_MATCH, got %v", k)
	}
}
