package command

import (
	"path/filepath"

	"github.com/roboblog/suite/internal/config"
	"github.com/roboblog/suite/internal/runner"
)

type suite struct {
	cfg    config.Config
	runner *runner.Runner
	wd     string
}

func newSuite(wd, configPath string) (s suite, err error) {
	s.wd = wd
	if configPath != "" {
		s.cfg, err = config.Load(configPath)
	} else {
		s.cfg, err = config.Discover(wd)
	}
	if err != nil {
		return
	}
	s.runner = runner.New(s.cfg, wd)
	return s, nil
}

// coverageDir is the HTML report location resolved against the project root.
func (s suite) coverageDir() string {
	return filepath.Join(s.wd, s.cfg.Coverage.HTMLDir)
}
