package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reports entries that appear below the root after it is called, until
// ctx is done. New directories within the depth limit are watched as well, and
// their existing contents are searched when they appear. An entry may be
// reported twice when it is created while its directory is being added.
func (s *Searcher) Watch(ctx context.Context, handler MatchHandler) error {
	if handler == nil {
		handler = defaultHandler()
	}

	src := s.source()
	if _, err := src.checkRoot(); err != nil {
		return err
	}
	info, err := os.Stat(src.Root())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: cannot watch non-directory %s", ErrRoot, src.Root())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	tw := &treeWatcher{
		src:     src,
		cfg:     s.cfg,
		watcher: watcher,
		handler: handler,
		logger:  s.logger,
	}
	if err := tw.addTree(ctx, src, false); err != nil {
		return err
	}

	s.logger.Debug("watching", zap.String("root", src.Root()))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if err := tw.created(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Debug("watcher error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}

// treeWatcher keeps an fsnotify watcher in sync with the directories of a
// search tree.
type treeWatcher struct {
	src     *Source
	cfg     *Config
	watcher *fsnotify.Watcher
	handler MatchHandler
	logger  *zap.Logger
}

// watchable reports whether the children of a directory at depth are within
// the depth limit.
func (tw *treeWatcher) watchable(depth int) bool {
	return tw.src.maxDepth == Unbounded || depth < tw.src.maxDepth
}

// addTree watches every reachable directory of src. With report set, matching
// entries found on the way are handed to the handler.
func (tw *treeWatcher) addTree(ctx context.Context, src *Source, report bool) error {
	_, err := src.Walk(ctx, func(e Entry) error {
		if e.Kind == KindDir && tw.watchable(e.Depth) {
			if err := tw.watcher.Add(e.Path); err != nil {
				tw.logger.Debug("cannot watch directory", zap.String("path", e.Path), zap.Error(err))
			}
		}
		if report && tw.cfg.Matches(e) {
			return tw.handler(ctx, e)
		}
		return nil
	})
	return err
}

// created handles a new name below the root.
func (tw *treeWatcher) created(ctx context.Context, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		// Gone again before we got to it.
		tw.logger.Debug("skipping entry", zap.String("path", path), zap.Error(err))
		return nil
	}

	depth := tw.src.depth(path)
	if tw.src.maxDepth != Unbounded && depth > tw.src.maxDepth {
		return nil
	}

	if info.IsDir() {
		err := tw.addTree(ctx, tw.src.sub(path, depth), true)
		switch {
		case err == nil, ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrRoot):
			// The directory vanished again.
			tw.logger.Debug("skipping directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		return err
	}

	e := Entry{
		Path:  path,
		Name:  filepath.Base(path),
		Kind:  kindOf(info.Mode()),
		Depth: depth,
	}
	if tw.cfg.Matches(e) {
		return tw.handler(ctx, e)
	}
	return nil
}
