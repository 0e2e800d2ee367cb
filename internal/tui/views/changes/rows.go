package changes

import (
	"filterdesk/internal/changeslist"
	"filterdesk/internal/tui/state"
	"filterdesk/internal/tui/util"
	chips "filterdesk/internal/tui/widgets/tagchips"
)

// RenderTags is a thin adapter over the TagChips widget for change rows.
func RenderTags(row changeslist.Row, noColor bool) string {
	return chips.View(util.RowTags(row.Matched), noColor)
}

// Kinds lists the chip kinds an annotation implies, for callers that sort or
// filter rows by match state.
func Kinds(a changeslist.Annotation) []state.TagKind {
	var out []state.TagKind
	if a.HasTag(changeslist.ClassMatch) {
		out = append(out, state.MATCH)
	}
	if a.HasTag(changeslist.ClassNoMatch) {
		out = append(out, state.NO_MATCH)
	}
	return out
}
