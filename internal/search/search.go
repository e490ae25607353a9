package search

import (
	"context"
	"iter"

	"go.uber.org/zap"
)

// MatchHandler is called once for every matching entry, in walk order.
// Returning an error stops the search.
type MatchHandler func(ctx context.Context, e Entry) error

// Searcher runs the predicate pipeline of a Config over a Source.
type Searcher struct {
	cfg    *Config
	logger *zap.Logger
}

// NewSearcher returns a Searcher for cfg. A nil logger discards log output.
func NewSearcher(cfg *Config, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{cfg: cfg, logger: logger}
}

// Config returns the configuration the searcher was built with.
func (s *Searcher) Config() *Config { return s.cfg }

func (s *Searcher) source() *Source {
	return NewSource(s.cfg.Root(), s.cfg.maxDepth, s.logger)
}

// Search walks the tree and hands every matching entry to handler as soon as
// it is found. A nil handler prints paths to stdout.
func (s *Searcher) Search(ctx context.Context, handler MatchHandler) (Stats, error) {
	if handler == nil {
		handler = defaultHandler()
	}

	var matched int64
	stats, err := s.source().Walk(ctx, func(e Entry) error {
		if !s.cfg.Matches(e) {
			return nil
		}
		matched++
		return handler(ctx, e)
	})
	stats.Matched = matched

	s.logger.Debug("search finished",
		zap.String("root", s.cfg.Root()),
		zap.String("fragment", s.cfg.Fragment()),
		zap.Stringer("kind", s.cfg.Kind()),
		zap.Int64("visited", stats.Visited),
		zap.Int64("matched", stats.Matched),
		zap.Int64("skipped", stats.Skipped),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return stats, err
}

// Matches returns the matching entries as a lazy sequence.
func (s *Searcher) Matches(ctx context.Context) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for e := range s.source().Entries(ctx) {
			if s.cfg.Matches(e) && !yield(e) {
				return
			}
		}
	}
}

// Collect runs a search and returns the matching paths.
func (s *Searcher) Collect(ctx context.Context) ([]string, error) {
	var paths []string
	_, err := s.Search(ctx, func(_ context.Context, e Entry) error {
		paths = append(paths, e.Path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
