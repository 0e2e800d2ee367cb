package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
api:
  endpoint: https://wiki.example/w/api.php
  timeout: 5s
editor:
  structured: false
messages:
  syntax_ok: "Looks fine."
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example/w/api.php", c.API.Endpoint)
	assert.Equal(t, 5*time.Second, c.API.Timeout)
	assert.False(t, c.Editor.Structured)
	assert.Equal(t, "Looks fine.", c.Messages.SyntaxOK)
	// untouched keys keep their defaults
	assert.Equal(t, "Syntax error: %s", c.Messages.SyntaxError)
	assert.Equal(t, 80, c.Editor.Width)
	assert.NotEmpty(t, c.Snippets)
}

func TestLoadAcceptsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"endpoint": "http://x/api.php"}, "editor": {"read_only": true}}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://x/api.php", c.API.Endpoint)
	assert.True(t, c.Editor.ReadOnly)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRequiresEndpoint(t *testing.T) {
	c := Default()
	c.API.Endpoint = ""
	assert.Error(t, c.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := Default()
	c.Editor.Style = "monokai"
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "monokai", got.Editor.Style)
	assert.Equal(t, c.API.Timeout, got.API.Timeout)
}

func TestExpand(t *testing.T) {
	cases := []struct {
		tmpl, detail, want string
	}{
		{"Syntax error: %s", "unexpected end", "Syntax error: unexpected end"},
		{"Syntax error", "unexpected end", "Syntax error: unexpected end"},
		{"Failed: ", "timeout", "Failed: timeout"},
		{"%d%% broken: %s", "x", "%d%% broken: x"},
		{"Done", "", "Done"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Expand(c.tmpl, c.detail), c.tmpl)
	}
}
