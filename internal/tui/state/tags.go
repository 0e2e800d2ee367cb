package state

// TagKind enumerates the status chips shown under the editor and beside
// change rows.
type TagKind int

const (
	// Stable ordering for display
	EDITED TagKind = iota
	READ_ONLY
	SYNTAX_OK
	SYNTAX_ERROR
	MATCH
	NO_MATCH
	ORIG_LEN
	MOD_LEN
)

// Tag represents a single status chip. Value is used for numeric counters.
// Non-numeric tags use Value = 0.
type Tag struct {
	Kind  TagKind
	Value int
}
