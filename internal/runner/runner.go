package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/roboblog/suite/internal/config"
	"github.com/roboblog/suite/internal/logger"
	"github.com/roboblog/suite/internal/styles"
	"github.com/roboblog/suite/pkg/fileutil"
)

// Mode selects which argument set the test runner is invoked with.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeCoverage Mode = "coverage"
	ModeQuick    Mode = "quick"
	ModeNew      Mode = "new"
)

// ExitError reports a test-runner process that ran and exited non-zero. The
// CLI propagates the code as its own exit status.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("test runner exited with code %d", e.Code)
}

type Runner struct {
	cfg    config.Config
	dir    string
	stdout io.Writer
	stderr io.Writer
}

func New(cfg config.Config, dir string) *Runner {
	return &Runner{cfg: cfg, dir: dir, stdout: os.Stdout, stderr: os.Stderr}
}

// Args returns the interpreter argument vector for a mode, without the
// interpreter itself.
func (r *Runner) Args(mode Mode) []string {
	run := r.cfg.Runner
	args := []string{"-m", run.Module}
	if mode == ModeNew && len(run.NewTestFiles) > 0 {
		args = append(args, run.NewTestFiles...)
	} else {
		args = append(args, r.cfg.Project.TestsDir)
	}
	args = append(args, run.Args...)
	cov := r.cfg.Coverage
	switch mode {
	case ModeCoverage:
		args = append(args,
			"--cov="+cov.Target,
			"--cov-report=term-missing",
			"--cov-report=html:"+cov.HTMLDir,
		)
	case ModeStandard:
		// Standard runs still measure the basic targets, reporting to the
		// terminal only; quick runs skip coverage entirely.
		for _, target := range cov.BasicTargets {
			args = append(args, "--cov="+target)
		}
		if len(cov.BasicTargets) > 0 {
			args = append(args, "--cov-report=term")
		}
	}
	if runtime.GOOS != "windows" {
		// Keep pytest color through the subprocess pipe.
		args = append(args, "--color=yes")
	}
	return args
}

// Env builds the child environment: the current environment with the source
// dir prepended to the configured path variable, plus any fixed entries.
func (r *Runner) Env() []string {
	env := os.Environ()
	run := r.cfg.Runner
	if run.PathEnv != "" {
		src := filepath.Join(r.dir, r.cfg.Project.SrcDir)
		val := src
		if existing, ok := os.LookupEnv(run.PathEnv); ok && existing != "" {
			val = src + string(os.PathListSeparator) + existing
		}
		env = setEnv(env, run.PathEnv, val)
	}
	for k, v := range run.Env {
		env = setEnv(env, k, v)
	}
	return env
}

func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// Installed reports whether the test runner module responds to --version.
func (r *Runner) Installed(ctx context.Context) bool {
	run := r.cfg.Runner
	cmd := exec.CommandContext(ctx, run.Interpreter, "-m", run.Module, "--version")
	cmd.Dir = r.dir
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	err := cmd.Run()
	logger.Debugw("runner version check", "interpreter", run.Interpreter, "module", run.Module, "err", err)
	return err == nil
}

// InstallDeps installs the configured test packages with the configured
// installer module.
func (r *Runner) InstallDeps(ctx context.Context) error {
	run := r.cfg.Runner
	fmt.Fprintln(r.stdout, styles.Render(styles.Warning,
		"Installing "+strings.Join(run.InstallPackages, " ")+"..."))
	args := append([]string{"-m", run.Installer, "install"}, run.InstallPackages...)
	return r.exec(ctx, args, nil)
}

// Run invokes the test runner in the given mode, streaming output to the
// runner's stdio.
func (r *Runner) Run(ctx context.Context, mode Mode) error {
	switch mode {
	case ModeCoverage:
		fmt.Fprintln(r.stdout, styles.Render(styles.Banner, "Running full coverage test..."))
	case ModeQuick:
		fmt.Fprintln(r.stdout, styles.Render(styles.Banner, "Running quick test..."))
	case ModeNew:
		fmt.Fprintln(r.stdout, styles.Render(styles.Banner, "Running new feature tests only..."))
	default:
		fmt.Fprintln(r.stdout, styles.Render(styles.Banner, "Running standard test..."))
	}
	if err := r.exec(ctx, r.Args(mode), r.Env()); err != nil {
		fmt.Fprintln(r.stdout, styles.Render(styles.Failure, "Tests failed"))
		return err
	}
	fmt.Fprintln(r.stdout, styles.Render(styles.Success, "All tests passed"))
	if mode == ModeCoverage {
		if index := r.htmlReport(); index != "" {
			fmt.Fprintln(r.stdout, styles.Render(styles.Warning, "Coverage report generated:"))
			fmt.Fprintln(r.stdout, "   "+index)
		}
	}
	return nil
}

// htmlReport returns the absolute path of the generated HTML report index, or
// "" when none exists.
func (r *Runner) htmlReport() string {
	index := filepath.Join(r.dir, r.cfg.Coverage.HTMLDir, "index.html")
	if !fileutil.FileExists(index) {
		return ""
	}
	if abs, err := filepath.Abs(index); err == nil {
		return abs
	}
	return index
}

func (r *Runner) exec(ctx context.Context, args []string, env []string) error {
	run := r.cfg.Runner
	logger.Debugw("exec", "interpreter", run.Interpreter, "args", args)
	cmd := exec.CommandContext(ctx, run.Interpreter, args...)
	cmd.Dir = r.dir
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ExitError{Code: exitErr.ExitCode()}
		}
		return errors.Wrapf(err, "error running %q", run.Interpreter)
	}
	return nil
}
