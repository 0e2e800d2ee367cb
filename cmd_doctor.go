package main

import (
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"filterdesk/internal/config"
	"filterdesk/internal/highlight"
	"filterdesk/internal/httpx"
)

func newDoctorCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, API endpoint, highlighter and clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := g.load()
			ok := mark(out, err == nil, "config loads", err)
			if err != nil {
				cfg = config.Default()
			}

			err = httpx.WaitHTTPUp(cfg.API.Endpoint, 3*time.Second)
			reachable := mark(out, err == nil, "endpoint reachable: "+cfg.API.Endpoint, err)
			ok = ok && reachable
			if reachable {
				ctx, cancel := signalContext()
				err = g.client(cfg).Ping(ctx)
				cancel()
				ok = mark(out, err == nil, "action API answers siteinfo", err) && ok
			}

			if cfg.Editor.Structured {
				_, err = highlight.Load(cfg.Editor.Grammar, cfg.Editor.Style)
				ok = mark(out, err == nil, "highlighted editor available", err) && ok
			} else {
				fmt.Fprintln(out, "  - highlighted editor disabled by config")
			}

			// a missing clipboard only disables ctrl+y
			mark(out, !clipboard.Unsupported, "system clipboard", nil)

			if ok {
				fmt.Fprintln(out, "All checks passed.")
			} else {
				fmt.Fprintln(out, "Some checks failed. Fix the items marked ✗ and retry.")
			}
			return nil
		},
	}
}

func mark(w io.Writer, ok bool, what string, err error) bool {
	if ok {
		fmt.Fprintf(w, "  ✓ %s\n", what)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  ✗ %s: %v\n", what, err)
	} else {
		fmt.Fprintf(w, "  ✗ %s\n", what)
	}
	return false
}
