package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"filterdesk/internal/changeslist"
	"filterdesk/internal/tui"
)

func newChangesCmd(g *globalOpts) *cobra.Command {
	var (
		testFilter string
		script     string
		browse     bool
	)
	cmd := &cobra.Command{
		Use:   "changes ROWS.json|-",
		Short: "Annotate recent-change rows with examine links and match state",
		Long: `Reads a JSON array of change rows ({"id", "title", "user", "summary",
"matched"}) and adds the examine link and match classes. With --tui the
annotated rows open in a browser view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			rows, err := changeslist.ReadRows(in)
			if err != nil {
				return err
			}
			if script == "" {
				script = cfg.Changes.Script
			}
			a := changeslist.Annotator{Script: script, TestFilter: testFilter}
			if browse {
				return tui.ShowChanges(rows, a, g.noColor)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.AnnotateAll(rows))
		},
	}
	f := cmd.Flags()
	f.StringVar(&testFilter, "test-filter", "", "id of the filter under test")
	f.StringVar(&script, "script", "", "index.php path for links (default changes.script)")
	f.BoolVar(&browse, "tui", false, "browse the annotated rows")
	return cmd
}
