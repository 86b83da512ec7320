package report

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"github.com/roboblog/suite/pkg/fileutil"
)

// Archive packs the HTML coverage report directory into a gzipped tarball at
// out, with entry names relative to dir.
func Archive(dir, out string) (err error) {
	if !fileutil.DirExists(dir) {
		return errors.Errorf("coverage report %q does not exist, run \"suite test-coverage\" first", dir)
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	gzw := pgzip.NewWriter(f)
	tw := tar.NewWriter(gzw)

	err = filepath.Walk(dir, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		hdr, err := tar.FileInfoHeader(fi, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		hdr.Format = tar.FormatPAX
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "error archiving %q", dir)
	}
	if err := tw.Close(); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(gzw.Close())
}

// List returns the entry names in a gzipped tarball produced by Archive.
func List(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	gzr, err := pgzip.NewReader(f)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer gzr.Close()
	tr := tar.NewReader(gzr)
	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return names, errors.WithStack(err)
		}
		names = append(names, hdr.Name)
	}
}
