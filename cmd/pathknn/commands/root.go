// Package commands implements the pathknn subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configFile string
	logLevel   string
	logFormat  string
	verbose    bool
	logger     *slog.Logger
}

// Execute runs the root command until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "pathknn",
		Short: "k-nearest-neighbor classification of pathology report embeddings",
		Long: `pathknn assigns each pathology report embedding a confidence per slide
by majority vote among its k nearest slide embeddings (squared Euclidean
distance, exhaustive search).

Environment variables are read from .env when present and may be referenced
as ${VAR} in config locations and DSNs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			logger, err := newLogger(cmd.ErrOrStderr(), g.logLevel, g.logFormat, g.verbose)
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configFile, "config", "", "YAML config file")
	flags.StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&g.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "shorthand for --log-level=debug")

	root.AddCommand(
		newClassifyCommand(g),
		newInspectCommand(g),
		newNeighborsCommand(g),
		newResultsCommand(g),
	)
	return root
}

func newLogger(w io.Writer, level, format string, verbose bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", format)
	}
}
