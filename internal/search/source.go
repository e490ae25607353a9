package search

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// ErrRoot is returned when the search root does not exist or cannot be read.
var ErrRoot = errors.New("search: invalid root")

// errStopped halts a walk whose consumer stopped pulling entries.
var errStopped = errors.New("search: iteration stopped")

// Stats holds counters for one walk.
type Stats struct {
	Visited int64         // Entries handed to the pipeline
	Matched int64         // Entries that passed every predicate
	Skipped int64         // Entries dropped because they could not be read
	Elapsed time.Duration // Wall time of the walk
}

// Source enumerates the entries below a root, depth first, up to a depth limit.
type Source struct {
	root     string
	maxDepth int
	offset   int // depth of root below the top of the search
	logger   *zap.Logger
}

// NewSource returns a Source rooted at root. A negative maxDepth means no limit.
// A nil logger discards log output.
func NewSource(root string, maxDepth int, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxDepth < 0 {
		maxDepth = Unbounded
	}
	return &Source{
		root:     filepath.Clean(root),
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// sub returns a Source for the subtree at path, which lies depth levels below
// s's root. Depths it reports stay relative to s's root.
func (s *Source) sub(path string, depth int) *Source {
	return &Source{
		root:     filepath.Clean(path),
		maxDepth: s.maxDepth,
		offset:   depth,
		logger:   s.logger,
	}
}

// Root returns the cleaned root path.
func (s *Source) Root() string { return s.root }

// checkRoot fails when the root cannot serve as the start of a walk. It
// returns the path to hand to godirwalk: a root that is a symbolic link is
// resolved to its target so the tree behind it is walked.
func (s *Source) checkRoot() (string, error) {
	info, err := os.Lstat(s.root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRoot, err)
	}
	walkRoot := s.root
	if info.Mode()&os.ModeSymlink != 0 {
		if walkRoot, err = filepath.EvalSymlinks(s.root); err != nil {
			return "", fmt.Errorf("%w: %w", ErrRoot, err)
		}
		if info, err = os.Stat(walkRoot); err != nil {
			return "", fmt.Errorf("%w: %w", ErrRoot, err)
		}
	}
	if info.IsDir() {
		f, err := os.Open(walkRoot)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRoot, err)
		}
		f.Close()
	}
	return walkRoot, nil
}

// display maps a path below walkRoot back under the root the caller gave.
func (s *Source) display(walkRoot, path string) string {
	if walkRoot == s.root {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(s.root, rel)
}

// depth returns how many levels below the root path lies.
func (s *Source) depth(path string) int {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." {
		return s.offset
	}
	return s.offset + strings.Count(rel, string(os.PathSeparator)) + 1
}

// Walk calls fn for every entry below the root, the root included. Entries
// that cannot be read are skipped. An error returned by fn stops the walk and
// is returned as is.
func (s *Source) Walk(ctx context.Context, fn func(Entry) error) (Stats, error) {
	var stats Stats
	start := time.Now()

	walkRoot, err := s.checkRoot()
	if err != nil {
		return stats, err
	}

	s.logger.Debug("starting walk",
		zap.String("root", s.root),
		zap.String("walk_root", walkRoot),
		zap.Int("max_depth", s.maxDepth))

	// fnErr keeps the caller's error intact; godirwalk may wrap what the
	// callback returns.
	var fnErr error

	options := &godirwalk.Options{
		AllowNonDirectory: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path = s.display(walkRoot, path)
			e := Entry{
				Path:  path,
				Name:  de.Name(),
				Kind:  kindOf(de.ModeType()),
				Depth: s.depth(path),
			}
			if path == s.root && walkRoot != s.root {
				// The root entry keeps the caller's name; its kind is the target's.
				e.Name = filepath.Base(s.root)
			}
			stats.Visited++
			if err := fn(e); err != nil {
				fnErr = err
				return err
			}
			if e.Kind == KindDir && s.maxDepth != Unbounded && e.Depth >= s.maxDepth {
				return filepath.SkipDir
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			if fnErr != nil || ctx.Err() != nil {
				return godirwalk.Halt
			}
			stats.Skipped++
			s.logger.Debug("skipping entry", zap.String("path", s.display(walkRoot, path)), zap.Error(err))
			return godirwalk.SkipNode
		},
	}

	err = godirwalk.Walk(walkRoot, options)
	stats.Elapsed = time.Since(start)
	switch {
	case fnErr != nil:
		return stats, fnErr
	case ctx.Err() != nil:
		return stats, ctx.Err()
	case err != nil:
		// Only reachable when the root vanished between checkRoot and the walk.
		return stats, fmt.Errorf("%w: %w", ErrRoot, err)
	}
	return stats, nil
}

// Entries returns the walk as a lazy sequence. Breaking out of the range loop
// halts the walk. Errors, including root errors, end the sequence early; use
// Walk to observe them.
func (s *Source) Entries(ctx context.Context) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		_, err := s.Walk(ctx, func(e Entry) error {
			if !yield(e) {
				return errStopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopped) {
			s.logger.Debug("entries ended early", zap.String("root", s.root), zap.Error(err))
		}
	}
}
