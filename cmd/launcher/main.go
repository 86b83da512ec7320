package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/roboblog/suite/internal/config"
	"github.com/roboblog/suite/internal/launcher"
	"github.com/roboblog/suite/internal/runner"
)

// launcher starts the project's interpreter module from the src directory
// next to this binary, forwarding all arguments verbatim. Configuration is
// read from a suite.toml next to the binary when one exists.
func main() {
	if err := run(os.Args); err != nil {
		var exitErr runner.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "launcher:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	cfg, err := config.Discover(filepath.Dir(executable))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		s := make(chan os.Signal, 1)
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
		<-s
		cancel()
	}()

	return launcher.Run(ctx, launcher.Options{
		Executable:  executable,
		SrcDirName:  cfg.Project.SrcDir,
		Interpreter: cfg.Runner.Interpreter,
		Module:      cfg.Project.EntryModule,
		Args:        args[1:],
	})
}
