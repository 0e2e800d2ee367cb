// Copyright
// SPDX-License-Identifier: MIT
// filterdesk: terminal workspace for writing, checking and testing abuse filters
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"filterdesk/internal/config"
	"filterdesk/internal/mwapi"
)

const Version = "0.1.0"

const stateDirName = ".filterdesk"

// errSyntax makes the process exit 1 without printing anything further.
var errSyntax = errors.New("syntax error")

type globalOpts struct {
	configPath string
	endpoint   string
	verbose    bool
	noColor    bool
}

// exitError carries a process exit status other than 1.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	err := newRootCmd().Execute()
	if err != nil && !errors.Is(err, errSyntax) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}
	eo := &editOpts{}
	root := &cobra.Command{
		Use:   "filterdesk [FILE]",
		Short: "Edit, check and test abuse filters from the terminal",
		Long: `filterdesk ` + Version + `
Opens a filter in a two-mode editor (highlighted or plain), checks its syntax
against a MediaWiki action API and jumps to the reported error position.
Without a subcommand it behaves like 'filterdesk edit'.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(g, eo, args)
		},
	}
	eo.bind(root)

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	pf.StringVar(&g.endpoint, "endpoint", "", "override api.endpoint")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging to the log file")
	pf.BoolVar(&g.noColor, "no-color", false, "render chips and results without colour")

	root.AddCommand(
		newEditCmd(g),
		newCheckCmd(g),
		newFetchCmd(g),
		newChangesCmd(g),
		newInitCmd(g),
		newDoctorCmd(g),
		newVersionCmd(),
	)
	return root
}

// load reads the config file and applies flag overrides.
func (g *globalOpts) load() (config.Config, error) {
	c, err := config.Load(g.configPath)
	if err != nil {
		return c, err
	}
	if g.endpoint != "" {
		c.API.Endpoint = g.endpoint
	}
	return c, nil
}

func (g *globalOpts) client(c config.Config) *mwapi.Client {
	return mwapi.New(c.API)
}

// openLogger returns a logger writing to the configured file. The terminal
// belongs to the TUI, so nothing is ever logged to stderr.
func openLogger(c config.Logging, verbose bool) (*slog.Logger, func(), error) {
	nop := func() {}
	if c.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nop, nil
	}
	path, err := homedir.Expand(c.File)
	if err != nil {
		return nil, nop, err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nop, fmt.Errorf("open log file: %w", err)
	}
	_, _ = fmt.Fprintf(f, "=== filterdesk %s started at %s ===\n", Version, time.Now().Format(time.RFC3339))

	level := parseLevel(c.Level)
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func() { _ = f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// signalContext is cancelled on the platform's interrupt signals.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), interruptSignals()...)
}

// readInput reads path, or stdin for "" and "-".
func readInput(path string, stdin io.Reader) (string, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "<stdin>", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", path, fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), path, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "filterdesk", Version)
		},
	}
}
