package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"filterdesk/internal/tui"
)

type editOpts struct {
	id       int
	readOnly bool
	plain    bool
	output   string
}

func (o *editOpts) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.id, "id", 0, "load stored filter ID before editing")
	f.BoolVar(&o.readOnly, "read-only", false, "view without editing")
	f.BoolVar(&o.plain, "plain", false, "never load the highlighted editor")
	f.StringVarP(&o.output, "output", "o", "", "where to write the saved filter (default FILE, or stdout)")
}

func newEditCmd(g *globalOpts) *cobra.Command {
	o := &editOpts{}
	cmd := &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Open the filter workspace",
		Long: `Opens FILE (created on save if missing) in the filter workspace.

Keys: ctrl+k check syntax, ctrl+t switch editor, ctrl+b filter builder,
ctrl+o load filter by id, ctrl+d diff, ctrl+y copy, ctrl+s save and quit,
esc quit, f1 help.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(g, o, args)
		},
	}
	o.bind(cmd)
	return cmd
}

func runEdit(g *globalOpts, o *editOpts, args []string) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg.Logging, g.verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	if o.readOnly {
		cfg.Editor.ReadOnly = true
	}
	if o.plain {
		cfg.Editor.Structured = false
	}

	var path, text string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		text = string(data)
	}

	client := g.client(cfg)
	if o.id > 0 {
		ctx, cancel := signalContext()
		text = preload(ctx, client, o.id, text, log)
		cancel()
	}

	log.Info("edit session", "file", path, "id", o.id, "endpoint", cfg.API.Endpoint)
	out, err := tui.Run(tui.Options{
		Config:    cfg,
		Text:      text,
		Validator: client,
		Fetcher:   client,
		Logger:    log,
		NoColor:   g.noColor,
	})
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	if !out.Saved {
		fmt.Fprintln(os.Stderr, "Not saved.")
		return nil
	}

	dest := o.output
	if dest == "" {
		dest = path
	}
	if dest == "" || dest == "-" {
		fmt.Print(out.Text)
		return nil
	}
	if err := os.WriteFile(dest, []byte(out.Text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	fmt.Println("Wrote", dest)
	return nil
}

// preload returns stored filter id, or text unchanged when the lookup
// misses or fails.
func preload(ctx context.Context, f tui.Fetcher, id int, text string, log *slog.Logger) string {
	pattern, found, err := f.FetchFilter(ctx, id)
	switch {
	case err != nil:
		log.Debug("preload failed", "id", id, "err", err)
		return text
	case !found:
		log.Debug("preload miss", "id", id)
		return text
	}
	return pattern
}
