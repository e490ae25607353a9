package search

import (
	"strings"
	"unicode/utf8"
)

// IsAllowed reports whether the entry's kind is one the search reports.
func (c *Config) IsAllowed(e Entry) bool {
	switch c.kind {
	case DirsOnly:
		return e.Kind == KindDir
	case FilesAndDirs:
		return e.Kind == KindFile || e.Kind == KindDir
	default:
		return e.Kind == KindFile
	}
}

// NameMatches reports whether the base name contains the fragment. Names that
// are not valid UTF-8 never match.
func (c *Config) NameMatches(e Entry) bool {
	if !utf8.ValidString(e.Name) {
		return false
	}
	return strings.Contains(c.fold(e.Name), c.needle)
}

// FileTypeMatches reports whether the extension equals the configured file
// type. The comparison is always case-sensitive, even when names are matched
// case-insensitively.
func (c *Config) FileTypeMatches(e Entry) bool {
	if c.fileType == "" {
		return true
	}
	ext, ok := e.Ext()
	return ok && ext == c.fileType
}

// Matches reports whether the entry passes the kind, name and extension checks.
func (c *Config) Matches(e Entry) bool {
	return c.IsAllowed(e) && c.NameMatches(e) && c.FileTypeMatches(e)
}
