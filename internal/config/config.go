package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "~/.config/filterdesk/config.yaml"

// Config is the whole runtime configuration. It is passed by value into the
// workspace so nothing below main reads ambient state.
type Config struct {
	API      API            `yaml:"api" json:"api"`
	Editor   Editor         `yaml:"editor" json:"editor"`
	Messages Messages       `yaml:"messages" json:"messages"`
	Snippets []SnippetGroup `yaml:"snippets" json:"snippets"`
	Changes  Changes        `yaml:"changes" json:"changes"`
	Logging  Logging        `yaml:"logging" json:"logging"`
}

// API describes the MediaWiki action API the workspace talks to.
type API struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint"` // e.g. https://example.org/w/api.php
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// Editor holds the structured-surface capability flags and layout.
type Editor struct {
	Structured bool   `yaml:"structured" json:"structured"`   // offer the highlighted editor at all
	ReadOnly   bool   `yaml:"read_only" json:"read_only"`     // surfaces ignore edits
	Grammar    string `yaml:"grammar" json:"grammar"`         // optional chroma XML lexer; empty = built-in
	Style      string `yaml:"style" json:"style"`             // chroma style name
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
}

// Messages are the user-visible result strings. SyntaxError, HTTPError and
// UnknownError have their first %s replaced by the detail.
type Messages struct {
	SyntaxOK     string `yaml:"syntax_ok" json:"syntax_ok"`
	SyntaxError  string `yaml:"syntax_error" json:"syntax_error"`
	HTTPError    string `yaml:"http_error" json:"http_error"`
	UnknownError string `yaml:"unknown_error" json:"unknown_error"`
}

// Expand fills tmpl with detail. Templates are never used as format
// strings; one without %s gets the detail appended after a colon.
func Expand(tmpl, detail string) string {
	if strings.Contains(tmpl, "%s") {
		return strings.Replace(tmpl, "%s", detail, 1)
	}
	if detail == "" {
		return tmpl
	}
	return strings.TrimRight(tmpl, " :") + ": " + detail
}

// SnippetGroup is one section of the filter builder.
type SnippetGroup struct {
	Name  string    `yaml:"name" json:"name"`
	Items []Snippet `yaml:"items" json:"items"`
}

type Snippet struct {
	Label string `yaml:"label" json:"label"`
	Text  string `yaml:"text" json:"text"`
}

// Changes configures the changes-list annotator.
type Changes struct {
	Script string `yaml:"script" json:"script"` // e.g. /w/index.php
}

type Logging struct {
	File  string `yaml:"file" json:"file"`
	Level string `yaml:"level" json:"level"` // debug|info|warn|error
}

// Default returns a configuration that works against a local MediaWiki.
func Default() Config {
	return Config{
		API: API{
			Endpoint:  "http://localhost:8080/w/api.php",
			Timeout:   20 * time.Second,
			UserAgent: "filterdesk/0.1",
		},
		Editor: Editor{
			Structured: true,
			Style:      "github",
			Width:      80,
			Height:     16,
		},
		Messages: Messages{
			SyntaxOK:     "No syntax errors detected.",
			SyntaxError:  "Syntax error: %s",
			HTTPError:    "Could not reach the server: %s",
			UnknownError: "Unknown error: %s",
		},
		Snippets: DefaultSnippets(),
		Changes:  Changes{Script: "/w/index.php"},
		Logging: Logging{
			File:  filepath.Join(".filterdesk", "filterdesk.log"),
			Level: "info",
		},
	}
}

// DefaultSnippets mirrors the groups of the filter builder dropdown.
func DefaultSnippets() []SnippetGroup {
	items := func(words ...string) []Snippet {
		out := make([]Snippet, 0, len(words))
		for _, w := range words {
			out = append(out, Snippet{Label: w, Text: w})
		}
		return out
	}
	return []SnippetGroup{
		{Name: "Operators", Items: items("&", "|", "^", "!", "==", "!=", "===", "<", ">", "<=", ">=", "contains", "like", "rlike", "irlike", "in")},
		{Name: "Functions", Items: items("length(", "lcase(", "ucase(", "ccnorm(", "rmdoubles(", "rmspecials(", "rmwhitespace(", "norm(", "count(", "specialratio(", "get_matches(", "equals_to_any(")},
		{Name: "Variables", Items: items("action", "user_name", "user_editcount", "user_groups", "user_age", "page_title", "page_namespace", "page_prefixedtitle", "added_lines", "removed_lines", "new_wikitext", "old_wikitext", "edit_delta", "summary", "timestamp")},
	}
}

// Load reads a YAML (or JSON) file over Default. A missing file at the
// default location is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	c := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return c, fmt.Errorf("expand config path: %w", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate fills zero values that would break the workspace and rejects
// settings that cannot work.
func (c *Config) Validate() error {
	d := Default()
	if c.API.Endpoint == "" {
		return errors.New("config: api.endpoint is required")
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.Editor.Width <= 0 {
		c.Editor.Width = d.Editor.Width
	}
	if c.Editor.Height <= 0 {
		c.Editor.Height = d.Editor.Height
	}
	if c.Messages.SyntaxOK == "" {
		c.Messages.SyntaxOK = d.Messages.SyntaxOK
	}
	if c.Messages.SyntaxError == "" {
		c.Messages.SyntaxError = d.Messages.SyntaxError
	}
	if c.Messages.HTTPError == "" {
		c.Messages.HTTPError = d.Messages.HTTPError
	}
	if c.Messages.UnknownError == "" {
		c.Messages.UnknownError = d.Messages.UnknownError
	}
	if len(c.Snippets) == 0 {
		c.Snippets = d.Snippets
	}
	return nil
}

// Save writes c as YAML, creating parent directories.
func Save(path string, c Config) error {
	p, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}
