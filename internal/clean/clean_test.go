package clean

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, []byte("x"), 0644))
}

func TestClean(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "htmlcov", "index.html"))
	writeFile(t, filepath.Join(root, ".coverage"))
	writeFile(t, filepath.Join(root, "src", "__pycache__", "mod.pyc"))
	writeFile(t, filepath.Join(root, "src", "tests", "__pycache__", "test_mod.pyc"))
	writeFile(t, filepath.Join(root, ".pytest_cache", "CACHEDIR.TAG"))
	writeFile(t, filepath.Join(root, "src", "keep.py"))

	patterns := []string{"htmlcov", ".coverage", "**/__pycache__", "**/.pytest_cache"}
	removed, err := Clean(root, patterns)
	require.NoError(t, err)
	require.Equal(t, []string{
		".coverage",
		".pytest_cache",
		"htmlcov",
		"src/__pycache__",
		"src/tests/__pycache__",
	}, removed)

	for _, gone := range []string{"htmlcov", ".coverage", "src/__pycache__", ".pytest_cache"} {
		_, err := os.Stat(filepath.Join(root, gone))
		require.True(t, os.IsNotExist(err), "%s should be removed", gone)
	}
	_, err = os.Stat(filepath.Join(root, "src", "keep.py"))
	require.NoError(t, err, "unmatched files stay put")
}

func TestClean_idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "htmlcov", "index.html"))
	patterns := []string{"htmlcov", ".coverage", "**/__pycache__"}

	removed, err := Clean(root, patterns)
	require.NoError(t, err)
	require.Equal(t, []string{"htmlcov"}, removed)

	// Nothing left to remove, still a success.
	removed, err = Clean(root, patterns)
	require.NoError(t, err)
	require.Empty(t, removed)
}

func TestClean_badPattern(t *testing.T) {
	_, err := Clean(t.TempDir(), []string{"[unclosed"})
	require.Error(t, err)
}
