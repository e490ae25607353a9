package search

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestStructure builds the fixture tree shared by the search tests:
//
//	test_file.txt another_test.rs no_match.py README.md
//	test_dir/ src/ another_test_folder/
//	nested/nested_test.txt nested/test_nested_dir/
func createTestStructure(t testing.TB) string {
	t.Helper()
	root := t.TempDir()

	for _, f := range []string{"test_file.txt", "another_test.rs", "no_match.py", "README.md"} {
		writeFile(t, filepath.Join(root, f))
	}
	for _, d := range []string{"test_dir", "src", "another_test_folder", "nested", filepath.Join("nested", "test_nested_dir")} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	writeFile(t, filepath.Join(root, "nested", "nested_test.txt"))

	return root
}

func writeFile(t testing.TB, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

// baseNames returns the sorted base names of paths.
func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	sort.Strings(names)
	return names
}
