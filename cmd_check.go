package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"filterdesk/internal/config"
	"filterdesk/internal/mwapi"
	"filterdesk/internal/textpos"
)

func newCheckCmd(g *globalOpts) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check [FILE|-]",
		Short: "Check a filter's syntax on the server",
		Long: `Sends the filter text to the syntax check endpoint. Exits 1 on a syntax
error and 2 when the server could not be asked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			text, name, err := readInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			res, err := g.client(cfg).CheckSyntax(ctx, text)
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			return reportCheck(cmd.OutOrStdout(), cfg.Messages, name, text, res, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the check response as JSON")
	return cmd
}

// reportCheck prints res and returns errSyntax when the filter did not parse.
func reportCheck(w io.Writer, msgs config.Messages, name, text string, res mwapi.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Response()); err != nil {
			return err
		}
	} else if res.OK() {
		fmt.Fprintln(w, msgs.SyntaxOK)
	} else {
		pos := textpos.IndexToPosition(text, res.Err.Offset)
		fmt.Fprintf(w, "%s:%d:%d: %s\n", name, pos.Row+1, pos.Column+1, config.Expand(msgs.SyntaxError, res.Err.Message))
	}
	if !res.OK() {
		return errSyntax
	}
	return nil
}
