package report

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	cov := filepath.Join(dir, "htmlcov")
	require.NoError(t, os.MkdirAll(filepath.Join(cov, "assets"), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(cov, "index.html"), []byte("<html>"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(cov, "assets", "style.css"), []byte("body{}"), 0644))

	out := filepath.Join(dir, "coverage.tar.gz")
	require.NoError(t, Archive(cov, out))

	names, err := List(out)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"assets", "assets/style.css", "index.html"}, names)
}

func TestArchive_missingDir(t *testing.T) {
	dir := t.TempDir()
	err := Archive(filepath.Join(dir, "htmlcov"), filepath.Join(dir, "out.tar.gz"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "test-coverage")
}

func TestServe_missingDir(t *testing.T) {
	err := Serve(context.Background(), filepath.Join(t.TempDir(), "htmlcov"), "localhost:0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "test-coverage")
}
