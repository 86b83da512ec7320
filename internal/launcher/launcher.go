package launcher

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/roboblog/suite/internal/logger"
	"github.com/roboblog/suite/internal/runner"
	"github.com/roboblog/suite/pkg/fileutil"
)

// Options describe one launch: which executable the launcher is, what to
// start, and what to forward.
type Options struct {
	// Executable is the path of the launcher binary itself. Source resolution
	// is relative to its directory, never to the caller's working directory.
	Executable  string
	SrcDirName  string
	Interpreter string
	Module      string
	// Args are forwarded to the module entry point verbatim.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// SourceDir resolves the source directory next to the launcher executable.
func SourceDir(executable, srcDirName string) (string, error) {
	dir, err := filepath.Abs(filepath.Dir(executable))
	if err != nil {
		return "", errors.WithStack(err)
	}
	src := filepath.Join(dir, srcDirName)
	if !fileutil.DirExists(src) {
		return "", errors.Errorf("source directory %q does not exist", src)
	}
	return src, nil
}

// Command builds the interpreter invocation for the module entry point, run
// from within the resolved source directory.
func Command(ctx context.Context, opts Options) (*exec.Cmd, error) {
	src, err := SourceDir(opts.Executable, opts.SrcDirName)
	if err != nil {
		return nil, err
	}
	args := append([]string{"-m", opts.Module}, opts.Args...)
	cmd := exec.CommandContext(ctx, opts.Interpreter, args...)
	cmd.Dir = src
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	return cmd, nil
}

// Run launches the module and blocks until it exits. A non-zero child exit
// comes back as a runner.ExitError carrying the child's code.
func Run(ctx context.Context, opts Options) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	cmd, err := Command(ctx, opts)
	if err != nil {
		return err
	}
	logger.Debugw("launch", "dir", cmd.Dir, "args", cmd.Args)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return runner.ExitError{Code: exitErr.ExitCode()}
		}
		return errors.Wrapf(err, "error running %q", opts.Interpreter)
	}
	return nil
}
