package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newFetchCmd(g *globalOpts) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fetch ID",
		Short: "Print a stored filter's pattern (nothing if it does not exist)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid filter id %q", args[0])
			}
			cfg, err := g.load()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			pattern, found, err := g.client(cfg).FetchFilter(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return nil
			}
			if output == "" || output == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), pattern)
				return nil
			}
			return os.WriteFile(output, []byte(pattern), 0644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the pattern to a file instead of stdout")
	return cmd
}
