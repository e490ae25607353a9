package search

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultRoot is the directory searched when no root is given.
const DefaultRoot = "."

// Unbounded is the depth limit of a search without a maximum depth.
const Unbounded = -1

// ErrNegativeDepth is returned for a maximum depth below zero.
var ErrNegativeDepth = errors.New("search: max depth must not be negative")

// KindFilter selects which entry kinds a search reports.
type KindFilter int

const (
	FilesOnly    KindFilter = iota // Regular files only
	DirsOnly                       // Directories only
	FilesAndDirs                   // Regular files and directories
)

// String returns the flag-style name of the filter.
func (k KindFilter) String() string {
	switch k {
	case DirsOnly:
		return "dirs-only"
	case FilesAndDirs:
		return "files-and-dirs"
	default:
		return "files-only"
	}
}

// kindFilterFor resolves the two user flags. OnlyDirs wins over IncludeDirs.
func kindFilterFor(includeDirs, onlyDirs bool) KindFilter {
	switch {
	case onlyDirs:
		return DirsOnly
	case includeDirs:
		return FilesAndDirs
	default:
		return FilesOnly
	}
}

// Options holds the user input for one search before it is resolved into a Config.
type Options struct {
	Fragment    string // Substring to look for in base names ("" matches every name)
	Root        string // Directory to start from (defaults to ".")
	IncludeDirs bool   // Report directories alongside files
	OnlyDirs    bool   // Report directories only; takes precedence over IncludeDirs
	FileType    string // Extension to require, without the dot (empty = any)
	MaxDepth    *int   // Levels below the root to descend (nil = unbounded)
	IgnoreCase  *bool  // Case-insensitive name matching (nil = platform default)
}

// Config is the resolved, immutable configuration of one search run.
type Config struct {
	fragment   string
	needle     string // fragment as compared against names
	root       string
	kind       KindFilter
	fileType   string
	maxDepth   int
	ignoreCase bool
}

// NewConfig validates opts and resolves its defaults.
func NewConfig(opts Options) (*Config, error) {
	maxDepth := Unbounded
	if opts.MaxDepth != nil {
		if *opts.MaxDepth < 0 {
			return nil, fmt.Errorf("%w: %d", ErrNegativeDepth, *opts.MaxDepth)
		}
		maxDepth = *opts.MaxDepth
	}

	root := opts.Root
	if root == "" {
		root = DefaultRoot
	}

	cfg := &Config{
		fragment:   opts.Fragment,
		root:       root,
		kind:       kindFilterFor(opts.IncludeDirs, opts.OnlyDirs),
		fileType:   opts.FileType,
		maxDepth:   maxDepth,
		ignoreCase: ResolveIgnoreCase(opts.IgnoreCase),
	}
	cfg.needle = cfg.fold(opts.Fragment)
	return cfg, nil
}

// ResolveIgnoreCase returns the explicit choice if there is one and the
// platform default otherwise.
func ResolveIgnoreCase(explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	return defaultIgnoreCase
}

// Fragment returns the substring searched for, as given by the user.
func (c *Config) Fragment() string { return c.fragment }

// Root returns the directory the search starts from.
func (c *Config) Root() string { return c.root }

// Kind returns the resolved entry kind filter.
func (c *Config) Kind() KindFilter { return c.kind }

// FileType returns the required extension, or "" when any extension is accepted.
func (c *Config) FileType() string { return c.fileType }

// IgnoreCase reports whether names are compared case-insensitively.
func (c *Config) IgnoreCase() bool { return c.ignoreCase }

// MaxDepth returns the depth limit and whether one is set.
func (c *Config) MaxDepth() (int, bool) {
	return c.maxDepth, c.maxDepth != Unbounded
}

// fold brings s into the form names are compared in. Without ignore-case the
// bytes are compared as they are.
func (c *Config) fold(s string) string {
	if c.ignoreCase {
		return strings.ToLower(s)
	}
	return s
}
