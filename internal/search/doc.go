// Package search implements the traversal-and-filter engine behind ff.
//
// A search walks the tree below a root directory and streams every entry whose
// base name contains a fragment, optionally restricted by entry kind, extension
// and depth:
//
//	cfg, err := search.NewConfig(search.Options{
//		Fragment: "test",
//		Root:     "./src",
//		FileType: "go",
//	})
//	if err != nil {
//		return err
//	}
//	s := search.NewSearcher(cfg, nil)
//	stats, err := s.Search(ctx, search.PrintHandler(os.Stdout))
//
// Entries that cannot be read during the walk are skipped. Only a missing or
// unreadable root aborts a search.
//
// Watch Functionality
//
// Searcher.Watch keeps reporting entries that appear below the root after the
// initial search:
//
//	err := s.Watch(ctx, search.PrintHandler(os.Stdout))
package search
