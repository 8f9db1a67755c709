package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResultsCommand(g *globals) *cobra.Command {
	var (
		flags   runFlags
		run     string
		asJSON  bool
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Print a stored classification run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := g.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			if cfg.Store.DSN == "" || run == "" {
				return fmt.Errorf("--db and --run are required")
			}
			st, db, err := openStore(ctx, cfg.Store.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := st.LoadResults(ctx, run)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return fmt.Errorf("run %q not found", run)
			}
			return report(cmd, outPath, asJSON, results)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&run, "run", "", "run id to print")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array of confidence objects")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write results to file instead of stdout")
	return cmd
}
