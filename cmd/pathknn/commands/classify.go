package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/viant/pathknn/index"
	"github.com/viant/pathknn/knn"
	"github.com/viant/pathknn/source"
	"github.com/viant/pathknn/store"
)

func newClassifyCommand(g *globals) *cobra.Command {
	var (
		flags   runFlags
		run     string
		fromDB  bool
		asJSON  bool
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify report embeddings against slide embeddings",
		Long: `Load the slide (reference) and report (query) datasets, build the
in-memory index and print, for every report, the share of its k nearest
slides per slide label.

With --db the slides are also written to SQLite and the results stored under
--run (a random id when empty). --from-db reads the slides from the database
instead of fetching them.

Examples:
  pathknn classify -k 5 --reference slides.json --queries reports.json
  pathknn classify --config pathknn.yaml --json -o results.json
  pathknn classify --db pathknn.db --run nightly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := g.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			if fromDB && cfg.Store.DSN == "" {
				return fmt.Errorf("--from-db requires --db")
			}
			fetcher := g.newFetcher(cfg)

			var st *store.SQLiteStore
			if cfg.Store.DSN != "" {
				var db *sql.DB
				if st, db, err = openStore(ctx, cfg.Store.DSN); err != nil {
					return err
				}
				defer db.Close()
			}

			records, err := loadReferences(ctx, fetcher, st, cfg.Reference, fromDB)
			if err != nil {
				return err
			}
			ref, err := index.Build(records, index.WithLogger(g.logger))
			if err != nil {
				return err
			}
			queries, err := fetcher.Queries(ctx, cfg.Queries)
			if err != nil {
				return err
			}
			classifier, err := knn.NewClassifier(ref,
				knn.WithK(cfg.K),
				knn.WithMetric(cfg.Metric),
				knn.WithWorkers(cfg.Workers),
				knn.WithLogger(g.logger))
			if err != nil {
				return err
			}
			results, err := classifier.Classify(ctx, queries)
			if err != nil {
				return err
			}

			if st != nil {
				if run == "" {
					run = uuid.NewString()
				}
				if err := st.SaveResults(ctx, run, results); err != nil {
					return err
				}
				g.logger.Info("stored results", "run", run, "queries", len(results))
			}
			return report(cmd, outPath, asJSON, results)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&run, "run", "", "run id used to store results with --db")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "read slides from --db instead of fetching them")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array of confidence objects (null for failed reports)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write results to file instead of stdout")
	return cmd
}

// loadReferences fetches the slide records, or reads them from st when
// fromDB is set. Fetched records are imported into st when it is open.
func loadReferences(ctx context.Context, fetcher *source.Fetcher, st *store.SQLiteStore, dataset source.Dataset, fromDB bool) ([]index.Record, error) {
	if fromDB {
		return st.LoadReferences(ctx)
	}
	records, err := fetcher.References(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if st != nil {
		if err := st.AddReferences(ctx, records); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func report(cmd *cobra.Command, path string, asJSON bool, results []knn.Result) (err error) {
	w, closeFn, err := output(cmd, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()
	if asJSON {
		return writeJSON(w, results)
	}
	return writeText(w, results)
}
