package commands

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/pathknn/config"
	"github.com/viant/pathknn/engine"
	"github.com/viant/pathknn/knn"
	"github.com/viant/pathknn/source"
	"github.com/viant/pathknn/store"
	"github.com/viant/pathknn/vector"
)

// runFlags override config file values when set on the command line.
type runFlags struct {
	k               int
	workers         int
	metric          string
	reference       string
	referenceMember string
	queries         string
	queriesMember   string
	db              string
}

func (f *runFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVarP(&f.k, "k", "k", knn.DefaultK, "number of nearest slides voting per report")
	flags.IntVar(&f.workers, "workers", 0, "concurrent queries (0 uses GOMAXPROCS)")
	flags.StringVar(&f.metric, "metric", string(vector.DefaultMetric), "distance metric")
	flags.StringVar(&f.reference, "reference", "", "slide embeddings location (path, file:// or http(s) URL)")
	flags.StringVar(&f.referenceMember, "reference-member", "", "JSON file inside the slide zip archive")
	flags.StringVar(&f.queries, "queries", "", "report embeddings location (path, file:// or http(s) URL)")
	flags.StringVar(&f.queriesMember, "queries-member", "", "JSON file inside the report zip archive")
	flags.StringVar(&f.db, "db", "", "SQLite DSN for stored slides and results")
}

// loadConfig reads --config, or the defaults, and applies changed flags.
func (g *globals) loadConfig(cmd *cobra.Command, f *runFlags) (*config.Config, error) {
	cfg := config.Default()
	if g.configFile != "" {
		var err error
		if cfg, err = config.Load(g.configFile); err != nil {
			return nil, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("k") {
		cfg.K = f.k
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("metric") {
		cfg.Metric = vector.Metric(f.metric)
	}
	if changed("reference") {
		cfg.Reference.Location = f.reference
		cfg.Reference.Member = ""
	}
	if changed("reference-member") {
		cfg.Reference.Member = f.referenceMember
	}
	if changed("queries") {
		cfg.Queries.Location = f.queries
		cfg.Queries.Member = ""
	}
	if changed("queries-member") {
		cfg.Queries.Member = f.queriesMember
	}
	if changed("db") {
		cfg.Store.DSN = f.db
	}
	cfg.ExpandEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *globals) newFetcher(cfg *config.Config) *source.Fetcher {
	return &source.Fetcher{
		Client:     &http.Client{Timeout: cfg.Fetch.Timeout},
		MaxRetries: cfg.Fetch.MaxRetries,
		BaseDelay:  cfg.Fetch.BaseDelay,
		Logger:     g.logger,
	}
}

func openStore(ctx context.Context, dsn string) (*store.SQLiteStore, *sql.DB, error) {
	db, err := engine.Open(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	st, err := store.NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return st, db, nil
}

// output returns the -o file, or stdout when path is empty.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

// writeJSON writes one confidences object per query, null for failures.
func writeJSON(w io.Writer, results []knn.Result) error {
	out := make([]knn.Confidences, len(results))
	for i, result := range results {
		if result.OK() {
			out[i] = result.Confidences
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func writeText(w io.Writer, results []knn.Result) error {
	for _, result := range results {
		var line string
		if result.OK() {
			entries := result.Confidences.Labels()
			parts := make([]string, len(entries))
			for i, entry := range entries {
				parts[i] = fmt.Sprintf("%d=%.4f", entry.Label, entry.Confidence)
			}
			line = strings.Join(parts, " ")
		} else {
			line = "error: " + result.Err.Error()
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", result.Position, line); err != nil {
			return err
		}
	}
	return nil
}
