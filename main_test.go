package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filterdesk/internal/changeslist"
	"filterdesk/internal/config"
	"filterdesk/internal/httpx"
	"filterdesk/internal/mwapi"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("api:\n  endpoint: http://127.0.0.1:1/w/api.php\nlogging:\n  file: \"\"\n"), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestReadInput(t *testing.T) {
	text, name, err := readInput("-", strings.NewReader("a & b"))
	require.NoError(t, err)
	assert.Equal(t, "a & b", text)
	assert.Equal(t, "<stdin>", name)

	p := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	text, name, err = readInput(p, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", text)
	assert.Equal(t, p, name)

	_, _, err = readInput(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestReportCheck(t *testing.T) {
	msgs := config.Default().Messages
	var b bytes.Buffer

	require.NoError(t, reportCheck(&b, msgs, "f", "a & b", mwapi.Result{}, false))
	assert.Equal(t, "No syntax errors detected.\n", b.String())

	b.Reset()
	res := mwapi.Result{Err: &mwapi.SyntaxError{Message: "unexpected end", Offset: 4}}
	err := reportCheck(&b, msgs, "f", "a &\nb", res, false)
	assert.ErrorIs(t, err, errSyntax)
	assert.Equal(t, "f:2:1: Syntax error: unexpected end\n", b.String())

	b.Reset()
	msgs.SyntaxError = "Bad filter"
	err = reportCheck(&b, msgs, "f", "a &\nb", res, false)
	assert.ErrorIs(t, err, errSyntax)
	assert.Equal(t, "f:2:1: Bad filter: unexpected end\n", b.String())

	b.Reset()
	err = reportCheck(&b, msgs, "f", "a &", res, true)
	assert.ErrorIs(t, err, errSyntax)
	var got mwapi.CheckResponse
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, mwapi.StatusError, got.Status)
	require.NotNil(t, got.Character)
	assert.Equal(t, 4, *got.Character)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "filterdesk "+Version+"\n", out)
}

func TestCheckCommandAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("filter") == "a &" {
			_, _ = io.WriteString(w, `{"abusefilterchecksyntax":{"status":"error","message":"unexpected end","character":3}}`)
			return
		}
		_, _ = io.WriteString(w, `{"abusefilterchecksyntax":{"status":"ok"}}`)
	}))
	defer srv.Close()

	out, err := execute(t, "a & b", "check", "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "No syntax errors detected.")

	out, err = execute(t, "a &", "check", "--endpoint", srv.URL)
	assert.ErrorIs(t, err, errSyntax)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "<stdin>:1:4: Syntax error: unexpected end")
}

func TestCheckTransportFailureExitsTwo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := execute(t, "a & b", "check", "--endpoint", srv.URL)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errSyntax)
	assert.Equal(t, 2, exitCode(err))
	var se *httpx.StatusError
	assert.ErrorAs(t, err, &se)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errSyntax))
	assert.Equal(t, 1, exitCode(errors.New("bad flag")))
	assert.Equal(t, 2, exitCode(fmt.Errorf("wrapped: %w", &exitError{code: 2, err: errors.New("down")})))
}

type stubFetcher struct {
	pattern string
	found   bool
	err     error
}

func (s stubFetcher) FetchFilter(context.Context, int) (string, bool, error) {
	return s.pattern, s.found, s.err
}

func TestPreloadKeepsTextOnMissOrError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	assert.Equal(t, "stored", preload(ctx, stubFetcher{pattern: "stored", found: true}, 4, "file", log))
	assert.Equal(t, "file", preload(ctx, stubFetcher{}, 4, "file", log))
	assert.Equal(t, "", preload(ctx, stubFetcher{}, 4, "", log))
	assert.Equal(t, "file", preload(ctx, stubFetcher{err: errors.New("connection refused")}, 4, "file", log))
}

func TestFetchCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("abfstartid") == "3" {
			_, _ = io.WriteString(w, `{"query":{"abusefilters":[{"id":3,"pattern":"action == 'edit'"}]}}`)
			return
		}
		_, _ = io.WriteString(w, `{"query":{"abusefilters":[]}}`)
	}))
	defer srv.Close()

	out, err := execute(t, "", "fetch", "3", "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "action == 'edit'\n", out)

	out, err = execute(t, "", "fetch", "4", "--endpoint", srv.URL)
	require.NoError(t, err, "a missing filter is not an error")
	assert.Empty(t, out)

	_, err = execute(t, "", "fetch", "zero")
	assert.Error(t, err)
}

func TestChangesCommand(t *testing.T) {
	rows := `[{"id":42,"title":"Sandbox","matched":true},{"id":43}]`
	out, err := execute(t, rows, "changes", "-", "--test-filter", "9")
	require.NoError(t, err)

	var got []changeslist.Annotated
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, []string{changeslist.ClassMatch}, got[0].Tags)
	assert.Contains(t, got[0].ExtraMarkup, "testfilter=9")
	assert.Contains(t, got[0].ExtraMarkup, "/w/index.php?")
	assert.True(t, got[1].SuppressRollback)
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfgPath := filepath.Join(dir, "sub", "config.yaml")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "init"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Wrote "+cfgPath)

	c, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().API.Endpoint, c.API.Endpoint)
	assert.DirExists(t, filepath.Join(dir, stateDirName))

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "init"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "already exists")
}
