package config

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/roboblog/suite/pkg/fileutil"
)

// FileName is the config file searched for in the working directory.
const FileName = "suite.toml"

type Config struct {
	Project  Project  `toml:"project"`
	Runner   Runner   `toml:"runner"`
	Coverage Coverage `toml:"coverage"`
	Clean    Clean    `toml:"clean"`
}

type Project struct {
	Name string `toml:"name"`
	// EntryModule is the interpreter module the launcher starts.
	EntryModule string `toml:"entry_module"`
	SrcDir      string `toml:"src_dir"`
	TestsDir    string `toml:"tests_dir"`
}

type Runner struct {
	Interpreter string   `toml:"interpreter"`
	Module      string   `toml:"module"`
	Args        []string `toml:"args"`
	Installer   string   `toml:"installer"`
	// InstallPackages are the packages "install-test" installs.
	InstallPackages []string `toml:"install_packages"`
	// NewTestFiles is the designated subset run by "test-new".
	NewTestFiles []string `toml:"new_test_files"`
	// PathEnv is the env var that receives the source dir prepended to its
	// existing value, so the runner can import the project under test.
	PathEnv string            `toml:"path_env"`
	Env     map[string]string `toml:"env"`
}

type Coverage struct {
	// Target is the measured source tree, passed to the coverage plugin on
	// full-coverage runs.
	Target string `toml:"target"`
	// BasicTargets are the trees measured on standard runs, which report to
	// the terminal only. Empty disables standard-run coverage entirely.
	BasicTargets []string `toml:"basic_targets"`
	HTMLDir      string   `toml:"html_dir"`
	DataFile     string   `toml:"data_file"`
}

type Clean struct {
	// Patterns are extra doublestar globs removed by "clean", relative to the
	// project root.
	Patterns []string `toml:"patterns"`
}

// Default returns the configuration assumed when suite.toml is missing or
// partial. The defaults mirror a conventional pytest project layout.
func Default() Config {
	return Config{
		Project: Project{
			Name:        "monitor",
			EntryModule: "monitor",
			SrcDir:      "src",
			TestsDir:    "src/tests",
		},
		Runner: Runner{
			Interpreter:     "python3",
			Module:          "pytest",
			Args:            []string{"-v", "--tb=short"},
			Installer:       "pip",
			InstallPackages: []string{"pytest", "pytest-cov"},
			PathEnv:         "PYTHONPATH",
			Env:             map[string]string{"PYTHONDONTWRITEBYTECODE": "1"},
		},
		Coverage: Coverage{
			Target:       "src",
			BasicTargets: []string{"src"},
			HTMLDir:      "htmlcov",
			DataFile:     ".coverage",
		},
	}
}

// Load reads the config at path over the defaults. Unknown keys are an error
// so that typos in suite.toml don't silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "error loading %q", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		strs := make([]string, len(keys))
		for i, k := range keys {
			strs[i] = k.String()
		}
		return cfg, errors.Errorf("unknown keys in %q: %s", path, strings.Join(strs, ", "))
	}
	return cfg, nil
}

// Discover loads suite.toml from dir, falling back to Default when the file
// doesn't exist.
func Discover(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	if !fileutil.FileExists(path) {
		return Default(), nil
	}
	return Load(path)
}

// CleanPatterns returns every glob "clean" removes: the coverage artifacts
// plus the conventional interpreter cache directories, then any configured
// extras.
func (cfg Config) CleanPatterns() []string {
	patterns := []string{
		cfg.Coverage.HTMLDir,
		cfg.Coverage.DataFile,
		"**/__pycache__",
		"**/.pytest_cache",
	}
	return append(patterns, cfg.Clean.Patterns...)
}
