package util

import (
	"unicode/utf8"

	"filterdesk/internal/tui/state"
)

// ComputeTags calculates the chips shown under the editor given the loaded
// (baseline) text, the current text and the syntax result.
//
// The returned slice preserves a stable order:
//
//	Edited, Read-only, Syntax OK | Syntax Error, Orig Len, Mod Len
//
// Orig Len and Mod Len are always included.
func ComputeTags(loaded, current string, result state.ResultKind, readOnly bool) []state.Tag {
	tags := make([]state.Tag, 0, 5)
	if loaded != current {
		tags = append(tags, state.Tag{Kind: state.EDITED})
	}
	if readOnly {
		tags = append(tags, state.Tag{Kind: state.READ_ONLY})
	}
	switch result {
	case state.ResultOK:
		tags = append(tags, state.Tag{Kind: state.SYNTAX_OK})
	case state.ResultError:
		tags = append(tags, state.Tag{Kind: state.SYNTAX_ERROR})
	}
	tags = append(tags,
		state.Tag{Kind: state.ORIG_LEN, Value: utf8.RuneCountInString(loaded)},
		state.Tag{Kind: state.MOD_LEN, Value: utf8.RuneCountInString(current)},
	)
	return tags
}

// RowTags returns the match chip for a change row, or nothing when the
// change was not tested.
func RowTags(matched *bool) []state.Tag {
	if matched == nil {
		return nil
	}
	if *matched {
		return []state.Tag{{Kind: state.MATCH}}
	}
	return []state.Tag{{Kind: state.NO_MATCH}}
}
