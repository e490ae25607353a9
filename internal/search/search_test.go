package search

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, opts Options) []string {
	t.Helper()
	paths, err := NewSearcher(mustConfig(t, opts), nil).Collect(context.Background())
	require.NoError(t, err)
	return baseNames(paths)
}

func TestSearchScenarios(t *testing.T) {
	root := createTestStructure(t)
	sensitive := boolPtr(false)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "files only",
			opts: Options{Fragment: "test", Root: root, IgnoreCase: sensitive},
			want: []string{"another_test.rs", "nested_test.txt", "test_file.txt"},
		},
		{
			name: "directories only",
			opts: Options{Fragment: "test", Root: root, OnlyDirs: true, IgnoreCase: sensitive},
			want: []string{"another_test_folder", "test_dir", "test_nested_dir"},
		},
		{
			name: "only dirs wins over include dirs",
			opts: Options{Fragment: "test", Root: root, OnlyDirs: true, IncludeDirs: true, IgnoreCase: sensitive},
			want: []string{"another_test_folder", "test_dir", "test_nested_dir"},
		},
		{
			name: "files and directories",
			opts: Options{Fragment: "test", Root: root, IncludeDirs: true, IgnoreCase: sensitive},
			want: []string{
				"another_test.rs", "another_test_folder", "nested_test.txt",
				"test_dir", "test_file.txt", "test_nested_dir",
			},
		},
		{
			name: "file type",
			opts: Options{Fragment: "test", Root: root, FileType: "txt", IgnoreCase: sensitive},
			want: []string{"nested_test.txt", "test_file.txt"},
		},
		{
			name: "no matches",
			opts: Options{Fragment: "nonexistent", Root: root, IncludeDirs: true, IgnoreCase: sensitive},
			want: []string{},
		},
		{
			name: "no matches dirs only",
			opts: Options{Fragment: "nonexistent", Root: root, OnlyDirs: true, IgnoreCase: boolPtr(true)},
			want: []string{},
		},
		{
			name: "case sensitive",
			opts: Options{Fragment: "Test", Root: root, IncludeDirs: true, IgnoreCase: sensitive},
			want: []string{},
		},
		{
			name: "case insensitive",
			opts: Options{Fragment: "Test", Root: root, IncludeDirs: true, IgnoreCase: boolPtr(true)},
			want: []string{
				"another_test.rs", "another_test_folder", "nested_test.txt",
				"test_dir", "test_file.txt", "test_nested_dir",
			},
		},
		{
			name: "case insensitive upper name",
			opts: Options{Fragment: "readme", Root: root, IgnoreCase: boolPtr(true)},
			want: []string{"README.md"},
		},
		{
			name: "empty fragment",
			opts: Options{Fragment: "", Root: root, IgnoreCase: sensitive},
			want: []string{"README.md", "another_test.rs", "nested_test.txt", "no_match.py", "test_file.txt"},
		},
		{
			name: "empty fragment dirs only",
			opts: Options{Fragment: "", Root: root, OnlyDirs: true, MaxDepth: intPtr(1), IgnoreCase: sensitive},
			want: []string{filepath.Base(root), "another_test_folder", "nested", "src", "test_dir"},
		},
		{
			name: "depth one",
			opts: Options{Fragment: "test", Root: root, IncludeDirs: true, MaxDepth: intPtr(1), IgnoreCase: sensitive},
			want: []string{"another_test.rs", "another_test_folder", "test_dir", "test_file.txt"},
		},
		{
			name: "depth zero",
			opts: Options{Fragment: "test", Root: root, IncludeDirs: true, MaxDepth: intPtr(0), IgnoreCase: sensitive},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, collect(t, tt.opts))
		})
	}
}

func TestSearchDepthZeroReportsRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "test_root")
	writeFile(t, filepath.Join(root, "test_child.txt"))

	got := collect(t, Options{Fragment: "test", Root: root, IncludeDirs: true, MaxDepth: intPtr(0), IgnoreCase: boolPtr(false)})
	assert.Equal(t, []string{"test_root"}, got)

	got = collect(t, Options{Fragment: "test", Root: root, IncludeDirs: true, MaxDepth: intPtr(1), IgnoreCase: boolPtr(false)})
	assert.ElementsMatch(t, []string{"test_root", "test_child.txt"}, got)
}

func TestSearchSymlinkRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	target := createTestStructure(t)
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(target, link))

	cfg := mustConfig(t, Options{Fragment: "test", Root: link, IgnoreCase: boolPtr(false)})
	paths, err := NewSearcher(cfg, nil).Collect(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(link, "another_test.rs"),
		filepath.Join(link, "nested", "nested_test.txt"),
		filepath.Join(link, "test_file.txt"),
	}, paths)
}

func TestSearchExactBytes(t *testing.T) {
	root := createTestStructure(t)
	// e followed by a combining acute accent.
	writeFile(t, filepath.Join(root, "cafe\u0301.txt"))

	got := collect(t, Options{Fragment: "cafe", Root: root, IgnoreCase: boolPtr(false)})
	assert.Equal(t, []string{"cafe\u0301.txt"}, got)

	got = collect(t, Options{Fragment: "caf\u00e9", Root: root, IgnoreCase: boolPtr(false)})
	assert.Empty(t, got)
}

func TestSearchUndecodableName(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("file names must be arbitrary bytes")
	}

	root := createTestStructure(t)
	if err := os.WriteFile(filepath.Join(root, "test\xff.txt"), nil, 0o644); err != nil {
		t.Skipf("file system rejects undecodable names: %v", err)
	}

	for _, ignoreCase := range []bool{false, true} {
		cfg := mustConfig(t, Options{Fragment: "test", Root: root, IgnoreCase: boolPtr(ignoreCase)})
		var paths []string
		stats, err := NewSearcher(cfg, nil).Search(context.Background(), func(_ context.Context, e Entry) error {
			paths = append(paths, e.Path)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"another_test.rs", "nested_test.txt", "test_file.txt"}, baseNames(paths))
		assert.Equal(t, int64(12), stats.Visited)
	}
}

func TestSearchIdempotent(t *testing.T) {
	root := createTestStructure(t)
	opts := Options{Fragment: "test", Root: root, IncludeDirs: true, IgnoreCase: boolPtr(false)}

	first := collect(t, opts)
	second := collect(t, opts)
	assert.Equal(t, first, second)
}

func TestSearchPredicateEquivalence(t *testing.T) {
	root := createTestStructure(t)
	writeFile(t, filepath.Join(root, "archive.tar.gz"))
	writeFile(t, filepath.Join(root, "nested", "TEST_upper.TXT"))

	optionSets := []Options{
		{Fragment: "test", Root: root},
		{Fragment: "test", Root: root, IncludeDirs: true, IgnoreCase: boolPtr(true)},
		{Fragment: "a", Root: root, OnlyDirs: true},
		{Fragment: "ar", Root: root, FileType: "gz"},
		{Fragment: "e", Root: root, IncludeDirs: true, FileType: "txt", MaxDepth: intPtr(1)},
	}

	for _, opts := range optionSets {
		cfg := mustConfig(t, opts)

		var want []string
		for e := range NewSource(root, cfg.maxDepth, nil).Entries(context.Background()) {
			if cfg.IsAllowed(e) && cfg.NameMatches(e) && cfg.FileTypeMatches(e) {
				want = append(want, e.Path)
			}
		}

		var got []string
		for e := range NewSearcher(cfg, nil).Matches(context.Background()) {
			got = append(got, e.Path)
		}
		assert.Equal(t, want, got, "%+v", opts)
	}
}

func TestSearchStats(t *testing.T) {
	root := createTestStructure(t)
	cfg := mustConfig(t, Options{Fragment: "test", Root: root, IgnoreCase: boolPtr(false)})

	var buf bytes.Buffer
	stats, err := NewSearcher(cfg, nil).Search(context.Background(), PrintHandler(&buf))
	require.NoError(t, err)

	assert.Equal(t, int64(11), stats.Visited)
	assert.Equal(t, int64(3), stats.Matched)
	assert.Equal(t, int64(0), stats.Skipped)
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)
}

func TestSearchHandlerErrorStops(t *testing.T) {
	root := createTestStructure(t)
	cfg := mustConfig(t, Options{Fragment: "test", Root: root, IncludeDirs: true, IgnoreCase: boolPtr(false)})
	broken := errors.New("broken pipe")

	var calls int
	_, err := NewSearcher(cfg, nil).Search(context.Background(), func(context.Context, Entry) error {
		calls++
		return broken
	})
	assert.True(t, errors.Is(err, broken))
	assert.Equal(t, 1, calls)
}

func TestSearchMissingRoot(t *testing.T) {
	cfg := mustConfig(t, Options{Fragment: "test", Root: filepath.Join(t.TempDir(), "gone")})
	_, err := NewSearcher(cfg, nil).Search(context.Background(), PrintHandler(&bytes.Buffer{}))
	assert.True(t, errors.Is(err, ErrRoot))
}

func TestMatchesStopsEarly(t *testing.T) {
	root := createTestStructure(t)
	cfg := mustConfig(t, Options{Fragment: "test", Root: root, IncludeDirs: true, IgnoreCase: boolPtr(false)})

	var got []Entry
	for e := range NewSearcher(cfg, nil).Matches(context.Background()) {
		got = append(got, e)
		break
	}
	require.Len(t, got, 1)
	assert.True(t, cfg.Matches(got[0]))
}
