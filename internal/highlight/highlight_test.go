package highlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(l Line) string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}

func TestBuiltinLexerKeepsText(t *testing.T) {
	h, err := Load("", "")
	require.NoError(t, err)

	src := "user_editcount < 10 /* new */\n& added_lines rlike \"spam\""
	lines := h.Lines(src)
	require.Len(t, lines, 2)
	assert.Equal(t, "user_editcount < 10 /* new */", plain(lines[0]))
	assert.Equal(t, "& added_lines rlike \"spam\"", plain(lines[1]))
}

func TestLinesEmptyAndTrailingNewline(t *testing.T) {
	h, err := Load("", "monokai")
	require.NoError(t, err)

	assert.Len(t, h.Lines(""), 1)
	lines := h.Lines("a\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a", plain(lines[0]))
	assert.Equal(t, "", plain(lines[1]))
}

func TestLoadMissingGrammarFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xml"), "")
	assert.Error(t, err)
}

func TestLoadXMLGrammar(t *testing.T) {
	dir := t.TempDir()
	grammar := `<lexer>
  <config>
    <name>Mini</name>
  </config>
  <rules>
    <state name="root">
      <rule pattern="\w+"><token type="Name"/></rule>
      <rule pattern="\s+"><token type="Text"/></rule>
      <rule pattern="."><token type="Punctuation"/></rule>
    </state>
  </rules>
</lexer>
`
	path := filepath.Join(dir, "mini.xml")
	require.NoError(t, os.WriteFile(path, []byte(grammar), 0o644))

	h, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "a & b", plain(h.Lines("a & b")[0]))
}
