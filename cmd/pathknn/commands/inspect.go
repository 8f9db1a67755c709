package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/viant/pathknn/index"
	"github.com/viant/pathknn/vector"
)

// previewComponents is the number of leading components printed per record.
const previewComponents = 4

func newInspectCommand(g *globals) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the first slide and report records",
		Long: `Fetch both datasets and print their first record, the number of usable
records and the embedding dimension. Nothing is classified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := g.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			fetcher := g.newFetcher(cfg)
			records, err := fetcher.References(ctx, cfg.Reference)
			if err != nil {
				return err
			}
			queries, err := fetcher.Queries(ctx, cfg.Queries)
			if err != nil {
				return err
			}
			ref, err := index.Build(records, index.WithLogger(g.logger))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "slides: %d records, %d indexed, %d dropped, dim %d\n",
				len(records), ref.Size(), len(ref.Dropped()), ref.Dim())
			if len(records) > 0 {
				preview(w, "first slide", records[0].Embedding)
			}
			fmt.Fprintf(w, "reports: %d records\n", len(queries))
			if len(queries) > 0 {
				preview(w, "first report", queries[0])
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func preview(w io.Writer, title string, raw any) {
	vec, err := vector.Validate(raw, 0)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", title, err)
		return
	}
	head := vec
	if len(head) > previewComponents {
		head = head[:previewComponents]
	}
	suffix := ""
	if len(vec) > len(head) {
		suffix = " ..."
	}
	fmt.Fprintf(w, "%s: dim %d %v%s\n", title, vec.Dim(), []float64(head), suffix)
}
