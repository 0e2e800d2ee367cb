// Package highlight provides the structured editor's syntax colouring for the
// filter language. The lexer is the structured surface's capability: it is
// built in, or loaded from a chroma XML grammar, and loading may fail.
package highlight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const defaultStyleName = "github"

// Token is a run of text sharing one style.
type Token struct {
	Text  string
	Style lipgloss.Style
}

// Line is the styled content of one row.
type Line []Token

// Highlighter tokenises filter text into styled lines.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	cache map[string][]Line
}

// Load builds a Highlighter. grammar is an optional path to a chroma XML
// lexer; empty selects the built-in filter grammar.
func Load(grammar, styleName string) (*Highlighter, error) {
	var lexer chroma.Lexer
	if strings.TrimSpace(grammar) == "" {
		l, err := filterLexer()
		if err != nil {
			return nil, fmt.Errorf("build filter lexer: %w", err)
		}
		lexer = l
	} else {
		dir, base := filepath.Split(grammar)
		if dir == "" {
			dir = "."
		}
		l, err := chroma.NewXMLLexer(os.DirFS(dir), base)
		if err != nil {
			return nil, fmt.Errorf("load grammar %s: %w", grammar, err)
		}
		lexer = l
	}
	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: chromaStyle(styleName),
		cache: make(map[string][]Line),
	}, nil
}

// chromaStyle resolves a style name, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// Lines returns one styled Line per '\n'-separated row of text.
func (h *Highlighter) Lines(text string) []Line {
	if cached, ok := h.cache[text]; ok {
		return cached
	}
	rows := strings.Count(text, "\n") + 1
	out := make([]Line, rows)

	iter, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		for i, l := range strings.Split(text, "\n") {
			out[i] = Line{{Text: l, Style: lipgloss.NewStyle()}}
		}
		return out
	}
	row := 0
	for _, tok := range iter.Tokens() {
		st := h.tokenStyle(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				row++
			}
			// chroma terminates unterminated input with a newline
			if row >= rows {
				break
			}
			if part != "" {
				out[row] = append(out[row], Token{Text: part, Style: st})
			}
		}
	}
	if len(h.cache) > 64 {
		h.cache = make(map[string][]Line)
	}
	h.cache[text] = out
	return out
}

func (h *Highlighter) tokenStyle(t chroma.TokenType) lipgloss.Style {
	st := lipgloss.NewStyle()
	e := h.style.Get(t)
	if e.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(e.Colour.String()))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// Render joins a styled line back into a terminal string.
func Render(l Line) string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Style.Render(t.Text))
	}
	return b.String()
}
