// Package search provides recursive name search over a directory tree.
//
// It re-exports the engine used by the ff command so that other programs can
// run the same searches and stream the matches to their own handlers.
package search

import (
	"context"

	internal "github.com/TFMV/ff/internal/search"
	"go.uber.org/zap"
)

// Re-export the types from the internal package
type (
	// Options holds the user input for one search.
	Options = internal.Options

	// Config is the resolved, immutable configuration of one search run.
	Config = internal.Config

	// KindFilter selects which entry kinds a search reports.
	KindFilter = internal.KindFilter

	// Entry is one node visited during a walk.
	Entry = internal.Entry

	// EntryKind classifies a filesystem node.
	EntryKind = internal.EntryKind

	// Stats holds counters for one walk.
	Stats = internal.Stats

	// MatchHandler is called once for every matching entry.
	MatchHandler = internal.MatchHandler

	// Searcher runs a search.
	Searcher = internal.Searcher

	// Source enumerates the entries below a root.
	Source = internal.Source

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel
)

// Re-export constants
const (
	FilesOnly    = internal.FilesOnly
	DirsOnly     = internal.DirsOnly
	FilesAndDirs = internal.FilesAndDirs

	KindOther = internal.KindOther
	KindFile  = internal.KindFile
	KindDir   = internal.KindDir

	Unbounded = internal.Unbounded

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// Re-export errors
var (
	ErrNegativeDepth = internal.ErrNegativeDepth
	ErrRoot          = internal.ErrRoot
)

// NewConfig validates opts and resolves its defaults.
func NewConfig(opts Options) (*Config, error) {
	return internal.NewConfig(opts)
}

// NewSearcher returns a Searcher for cfg. A nil logger discards log output.
func NewSearcher(cfg *Config, logger *zap.Logger) *Searcher {
	return internal.NewSearcher(cfg, logger)
}

// NewSource returns a Source rooted at root. A negative maxDepth means no limit.
func NewSource(root string, maxDepth int, logger *zap.Logger) *Source {
	return internal.NewSource(root, maxDepth, logger)
}

// NewLogger creates a zap logger with the specified log level.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}

// Search runs a one-off search with opts and hands every match to handler.
// A nil handler prints matching paths to stdout.
func Search(ctx context.Context, opts Options, handler MatchHandler) (Stats, error) {
	cfg, err := internal.NewConfig(opts)
	if err != nil {
		return Stats{}, err
	}
	return internal.NewSearcher(cfg, nil).Search(ctx, handler)
}

// Watch runs Searcher.Watch for opts until ctx is done.
func Watch(ctx context.Context, opts Options, handler MatchHandler) error {
	cfg, err := internal.NewConfig(opts)
	if err != nil {
		return err
	}
	return internal.NewSearcher(cfg, nil).Watch(ctx, handler)
}

// ResolveIgnoreCase returns the explicit choice if there is one and the
// platform default otherwise.
func ResolveIgnoreCase(explicit *bool) bool {
	return internal.ResolveIgnoreCase(explicit)
}
