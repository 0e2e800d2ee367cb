// Package textpos converts between flat character offsets and row/column
// positions. Offsets and columns count runes; rows are split on '\n'.
package textpos

import "unicode/utf8"

// Position is a 0-based row and rune column.
type Position struct {
	Row    int
	Column int
}

// Len is the length of s in runes.
func Len(s string) int { return utf8.RuneCountInString(s) }

// Clamp limits offset to [0, n].
func Clamp(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

// IndexToPosition returns the position of offset in s. Offsets past the end
// resolve to the end of the last line.
func IndexToPosition(s string, offset int) Position {
	offset = Clamp(offset, Len(s))
	var p Position
	i := 0
	for _, r := range s {
		if i == offset {
			return p
		}
		if r == '\n' {
			p.Row++
			p.Column = 0
		} else {
			p.Column++
		}
		i++
	}
	return p
}

// PositionToIndex is the inverse of IndexToPosition. Rows past the end map to
// the end of s; columns past the end of a row map to the end of that row.
func PositionToIndex(s string, p Position) int {
	if p.Row < 0 {
		return 0
	}
	row, col, i := 0, 0, 0
	for _, r := range s {
		if row == p.Row && (col >= p.Column || r == '\n') {
			return i
		}
		if r == '\n' {
			row++
			col = 0
		} else {
			col++
		}
		i++
	}
	return i
}

// ByteOffset converts a rune offset into a byte offset into s.
func ByteOffset(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	i := 0
	for b := range s {
		if i == offset {
			return b
		}
		i++
	}
	return len(s)
}
