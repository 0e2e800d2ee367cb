package textpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexToPosition(t *testing.T) {
	cases := []struct {
		text   string
		offset int
		want   Position
	}{
		{"", 0, Position{0, 0}},
		{"a &", 3, Position{0, 3}},
		{"a\n&", 2, Position{1, 0}},
		{"a\n&", 3, Position{1, 1}},
		{"a\n&\n", 4, Position{2, 0}},
		{"añb\ncd", 5, Position{1, 1}},
		{"abc", -4, Position{0, 0}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IndexToPosition(c.text, c.offset), "text %q offset %d", c.text, c.offset)
	}
}

func TestIndexToPositionClampsPastEnd(t *testing.T) {
	for _, s := range []string{"", "x", "a\nb", "line one\nline two\n"} {
		end := IndexToPosition(s, Len(s))
		assert.Equal(t, end, IndexToPosition(s, Len(s)+5), "text %q", s)
		assert.Equal(t, Len(s), PositionToIndex(s, end), "text %q", s)
	}
}

func TestPositionToIndexRoundTrip(t *testing.T) {
	s := "user_editcount < 10\n& added_lines rlike \"spam\"\n"
	for i := 0; i <= Len(s); i++ {
		assert.Equal(t, i, PositionToIndex(s, IndexToPosition(s, i)))
	}
}

func TestPositionToIndexClampsColumn(t *testing.T) {
	assert.Equal(t, 2, PositionToIndex("ab\ncd", Position{Row: 0, Column: 50}))
	assert.Equal(t, 5, PositionToIndex("ab\ncd", Position{Row: 9, Column: 0}))
	assert.Equal(t, 0, PositionToIndex("ab\ncd", Position{Row: -1}))
}

func TestByteOffset(t *testing.T) {
	assert.Equal(t, 0, ByteOffset("ñx", 0))
	assert.Equal(t, 2, ByteOffset("ñx", 1))
	assert.Equal(t, 3, ByteOffset("ñx", 2))
	assert.Equal(t, 3, ByteOffset("ñx", 9))
}
