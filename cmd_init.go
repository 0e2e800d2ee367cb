package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"filterdesk/internal/config"
)

func newInitCmd(g *globalOpts) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and the local state directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if path == "" {
				path = config.DefaultPath
			}
			p, err := homedir.Expand(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(p); err == nil && !force {
				fmt.Fprintln(out, p, "already exists; not overwriting")
			} else if err == nil || errors.Is(err, fs.ErrNotExist) {
				c := config.Default()
				if g.endpoint != "" {
					c.API.Endpoint = g.endpoint
				}
				if err := config.Save(p, c); err != nil {
					return fmt.Errorf("write config: %w", err)
				}
				fmt.Fprintln(out, "Wrote", p)
			} else {
				return err
			}
			if err := os.MkdirAll(stateDirName, 0o755); err != nil {
				return err
			}
			fmt.Fprintln(out, "Initialized", stateDirName+"/")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}
