package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/viant/pathknn/vector"
)

func newNeighborsCommand(g *globals) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "neighbors <embedding>",
		Short: "Rank stored slides for one embedding",
		Long: `Rank the slides stored in --db by vec_l2sq distance to a JSON embedding
and print the k nearest as "label<TAB>distance".

Example:
  pathknn neighbors --db pathknn.db -k 3 '[0.12, 0.5, 0.33]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := g.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			if cfg.Store.DSN == "" {
				return fmt.Errorf("--db is required")
			}
			if !gjson.Valid(args[0]) {
				return fmt.Errorf("embedding is not valid JSON")
			}
			query, err := vector.Validate(gjson.Parse(args[0]).Value(), 0)
			if err != nil {
				return err
			}
			st, db, err := openStore(ctx, cfg.Store.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			matches, err := st.Nearest(ctx, query, cfg.K)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("no stored slides with dimension %d", query.Dim())
			}
			w := cmd.OutOrStdout()
			for _, match := range matches {
				fmt.Fprintf(w, "%d\t%g\n", match.Label, match.Distance)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
