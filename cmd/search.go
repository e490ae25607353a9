package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	search "github.com/TFMV/ff/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newSearchCmd(v *viper.Viper) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search [options] <fragment>",
		Short: "Search for files and directories by name",
		Long: `Search the tree below --path for entries whose base name contains <fragment>.
An empty fragment ("") matches every name.
Matching paths are printed one per line as they are found.

Examples:
  ff search test
  ff search test --path ./src --file-type go
  ff search build --only-dirs --max-depth 2
  ff search readme --ignore-case
  ff search _test --format "{dir}: {base}"
  ff search todo --watch`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, v, args[0], true, v.GetBool("search.watch"))
		},
	}

	addSearchFlags(searchCmd.Flags())
	searchCmd.Flags().BoolP("watch", "w", false, "Keep reporting new matches after the search")
	searchCmd.Flags().Bool("stats", false, "Print a summary to stderr when the search ends")

	return searchCmd
}

// addSearchFlags defines the flags shared by search and watch.
func addSearchFlags(flags *pflag.FlagSet) {
	flags.StringP("path", "p", search.DefaultRoot, "Directory to start from")
	flags.BoolP("include-dirs", "d", false, "Include directories in the results")
	flags.BoolP("only-dirs", "D", false, "Only report directories")
	flags.StringP("file-type", "t", "", "Only report entries with this extension (e.g. txt)")
	flags.IntP("max-depth", "M", 0, "Maximum directory depth below the path to descend")
	flags.BoolP("ignore-case", "i", false, "Match names case-insensitively (default true on windows and macOS; pass --ignore-case=false to match exactly there)")
	flags.String("format", "", "Format string for output ({}, {base}, {dir}, {ext}, {kind}, {depth})")
	flags.String("color", search.ColorAuto, "Highlight matches (auto|always|never)")
}

// bindFlags binds the flags of the running command under the "search" key,
// so that the config file and FF_SEARCH_* variables apply to both commands.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag("search."+f.Name, f); bindErr != nil && err == nil {
			err = bindErr
		}
	})
	return err
}

// searchOptions builds search options from the bound flags and config.
// Depth and case sensitivity are only set when given, so the engine can apply
// its own defaults.
func searchOptions(v *viper.Viper, fragment string) search.Options {
	opts := search.Options{
		Fragment:    fragment,
		Root:        v.GetString("search.path"),
		IncludeDirs: v.GetBool("search.include-dirs"),
		OnlyDirs:    v.GetBool("search.only-dirs"),
		FileType:    v.GetString("search.file-type"),
	}
	if v.IsSet("search.max-depth") {
		depth := v.GetInt("search.max-depth")
		opts.MaxDepth = &depth
	}
	if v.IsSet("search.ignore-case") {
		ignoreCase := v.GetBool("search.ignore-case")
		opts.IgnoreCase = &ignoreCase
	}
	return opts
}

// outputHandler picks the handler matches are written with.
func outputHandler(v *viper.Viper, cfg *search.Config, out io.Writer) (search.MatchHandler, error) {
	if format := v.GetString("search.format"); format != "" {
		return search.FormatHandler(out, format), nil
	}
	colored, err := search.ColorEnabled(v.GetString("search.color"), out)
	if err != nil {
		return nil, err
	}
	if colored {
		return search.HighlightHandler(out, cfg), nil
	}
	return search.PrintHandler(out), nil
}

// runSearch runs the initial search when initial is set and then watches for
// new matches when watch is set.
func runSearch(cmd *cobra.Command, v *viper.Viper, fragment string, initial, watch bool) error {
	cfg, err := search.NewConfig(searchOptions(v, fragment))
	if err != nil {
		return err
	}

	logger, err := newLogger(v)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}

	handler, err := outputHandler(v, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	s := search.NewSearcher(cfg, logger)
	ctx := contextOrBackground(cmd.Context())

	if initial {
		stats, err := s.Search(ctx, handler)
		if err != nil {
			return err
		}
		if v.GetBool("search.stats") {
			fmt.Fprintf(cmd.ErrOrStderr(), "visited %d, matched %d, skipped %d in %s\n",
				stats.Visited, stats.Matched, stats.Skipped, stats.Elapsed)
		}
	}

	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Watch(ctx, handler)
}

// contextOrBackground returns ctx, or a background context when ctx is nil.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
