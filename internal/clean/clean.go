package clean

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/roboblog/suite/internal/logger"
)

// Clean removes everything under root matching the given doublestar patterns.
// Removal is best effort: a pattern that matches nothing is not an error, so
// running Clean twice in a row succeeds both times. The removed paths are
// returned relative to root.
func Clean(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	var removed []string
	for _, pattern := range patterns {
		var matches []string
		err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
			matches = append(matches, path)
			if d.IsDir() {
				// RemoveAll will take the whole directory.
				return fs.SkipDir
			}
			return nil
		})
		if err != nil {
			return removed, errors.Wrapf(err, "error with pattern %q", pattern)
		}
		// Deleting during the walk would pull the filesystem out from under
		// GlobWalk, so collect first.
		for _, match := range matches {
			logger.Debugw("clean", "path", match)
			if err := os.RemoveAll(filepath.Join(root, match)); err != nil {
				return removed, errors.Wrapf(err, "error removing %q", match)
			}
			removed = append(removed, match)
		}
	}
	sort.Strings(removed)
	return removed, nil
}
