package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mitchellh/go-wordwrap"
	"github.com/pkg/errors"
	"github.com/roboblog/suite/internal/clean"
	"github.com/roboblog/suite/internal/logger"
	"github.com/roboblog/suite/internal/report"
	"github.com/roboblog/suite/internal/runner"
	"github.com/roboblog/suite/internal/styles"
	cli "github.com/urfave/cli/v2"
)

var (
	commandHelpTemplate = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}}{{if .VisibleFlags}} [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}{{if .Category}}

Category:
   {{.Category}}{{end}}{{if .Description}}

Description:
   {{.Description | nindent 3 | trim}}{{end}}{{if .VisibleFlags}}

Options:{{range .VisibleFlags}}
   {{.}}{{end}}{{end}}
`

	appHelpTemplate = `Usage: {{.Usage}}
	{{.Description | nindent 3 | trim}}
Commands:{{range .VisibleCategories}}{{if .Name}}
	{{.Name}}:{{range .VisibleCommands}}
	  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
	{{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{end}}{{end}}

Options:
	{{range $index, $option := .VisibleFlags}}{{if $index}}
	{{end}}{{$option}}{{end}}
`
)

func cliApp(wd string) *cli.App {
	newSuiteFromFlags := func(c *cli.Context) (suite, error) {
		return newSuite(wd, c.String("config"))
	}
	runMode := func(mode runner.Mode) cli.ActionFunc {
		return func(c *cli.Context) error {
			s, err := newSuiteFromFlags(c)
			if err != nil {
				return err
			}
			if !s.runner.Installed(c.Context) {
				return errors.Errorf("%s is not installed, run \"suite install-test\" first",
					s.cfg.Runner.Module)
			}
			return s.runner.Run(c.Context, mode)
		}
	}

	app := &cli.App{
		Name:                  "suite",
		Usage:                 "suite [--version] [--help] <command> [args]",
		Description:           "suite runs a project's test workflow: one keyword, one action.",
		Version:               "0.1.0",
		CustomAppHelpTemplate: appHelpTemplate,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to suite.toml, defaults to the one in the working directory",
			},
		},
		CommandNotFound: func(c *cli.Context, command string) {
			logger.Printfln("suite: unknown command %q", command)
			_ = cli.ShowAppHelp(c)
			cli.OsExiter(1)
		},
		Commands: []*cli.Command{
			{
				Name:  "test",
				Usage: "Run the full test suite",
				UsageText: `suite test

Runs the whole suite in standard mode: verbose output, short tracebacks, no
coverage collection beyond what the runner does by default.`,
				Action: runMode(runner.ModeStandard),
			},
			{
				Name:  "test-coverage",
				Usage: "Run the test suite with coverage reporting",
				UsageText: `suite test-coverage

Runs the whole suite with coverage instrumentation. Prints a term-missing
summary and writes the HTML report to the configured coverage directory.`,
				Action: runMode(runner.ModeCoverage),
			},
			{
				Name:  "test-quick",
				Usage: "Run the test suite without coverage collection",
				UsageText: `suite test-quick`,
				Action:    runMode(runner.ModeQuick),
			},
			{
				Name:  "test-new",
				Usage: "Run only the designated subset of tests",
				UsageText: `suite test-new

Runs the test files listed under runner.new_test_files in suite.toml. Falls
back to the full suite when the list is empty.`,
				Action: runMode(runner.ModeNew),
			},
			{
				Name:      "install-test",
				Usage:     "Install the test dependencies",
				UsageText: `suite install-test`,
				Action: func(c *cli.Context) error {
					s, err := newSuiteFromFlags(c)
					if err != nil {
						return err
					}
					return s.runner.InstallDeps(c.Context)
				},
			},
			{
				Name:  "clean",
				Usage: "Remove generated coverage and cache artifacts",
				UsageText: `suite clean

Removes the HTML coverage directory, the coverage data file, interpreter
cache directories, and any extra configured patterns. Missing targets are
skipped silently; running clean twice in a row succeeds.`,
				Action: func(c *cli.Context) error {
					s, err := newSuiteFromFlags(c)
					if err != nil {
						return err
					}
					removed, err := clean.Clean(s.wd, s.cfg.CleanPatterns())
					for _, path := range removed {
						fmt.Fprintln(c.App.Writer, "removed "+path)
					}
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, styles.Render(styles.Success, "Clean complete"))
					return nil
				},
			},
			{
				Name:      "serve-coverage",
				Usage:     "Serve the HTML coverage report over local HTTP",
				UsageText: `suite serve-coverage [options]`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Value: "localhost",
						Usage: "the host that the report server will listen on",
					},
					&cli.StringFlag{
						Name:  "port",
						Value: "8960",
						Usage: "the port that the report server will listen on",
					},
				},
				Action: func(c *cli.Context) error {
					s, err := newSuiteFromFlags(c)
					if err != nil {
						return err
					}
					addr := fmt.Sprintf("%s:%s", c.String("host"), c.String("port"))
					fmt.Fprintf(c.App.Writer, "Coverage report on http://%s\n", addr)
					return report.Serve(c.Context, s.coverageDir(), addr)
				},
			},
			{
				Name:      "archive-coverage",
				Usage:     "Pack the HTML coverage report into a tarball",
				UsageText: `suite archive-coverage [options]`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "coverage.tar.gz",
						Usage:   "where to write the archive",
					},
				},
				Action: func(c *cli.Context) error {
					s, err := newSuiteFromFlags(c)
					if err != nil {
						return err
					}
					out := c.String("output")
					if err := report.Archive(s.coverageDir(), out); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "wrote "+out)
					return nil
				},
			},
		},
	}

	for _, c := range app.Commands {
		c.CustomHelpTemplate = commandHelpTemplate

		// Wrap the options help to 80 width. Requires knowledge of the longest
		// flag length. Assumes there are never aliases.
		longest := 0
		for _, flag := range c.Flags {
			for _, name := range flag.Names() {
				if len(name) > longest {
					longest = len(name)
				}
			}
		}
		for _, flag := range c.Flags {
			switch c := flag.(type) {
			case *cli.BoolFlag:
				c.Usage = formatFlag(c.Usage, longest)
			case *cli.StringFlag:
				c.Usage = formatFlag(c.Usage, longest)
			case *cli.StringSliceFlag:
				c.Usage = formatFlag(c.Usage, longest)
			}
		}
	}
	return app
}

// RunCLI runs the cli with os.Args
func RunCLI() {
	// Patch cli lib to remove bool default
	oldFlagStringer := cli.FlagStringer
	cli.FlagStringer = func(f cli.Flag) string {
		return strings.TrimSuffix(oldFlagStringer(f), " (default: false)")
	}

	wd, err := os.Getwd()
	if err != nil {
		logger.Print(err)
		os.Exit(1)
	}
	app := cliApp(wd)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		s := make(chan os.Signal, 5)
		count := 0
		// handle all signals for the process.
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
		for {
			<-s
			count++
			cancel()
			if count == 3 {
				fmt.Println("Three interrupt attempts, exiting immediately")
				os.Exit(1)
			}
			fmt.Println("Got interrupt, shutting down")
		}
	}()
	var exitCode int
	if err := app.RunContext(ctx, os.Args); err != nil {
		if er, ok := errors.Cause(err).(runner.ExitError); ok {
			exitCode = er.Code
		} else {
			logger.Print(err)
			exitCode = 1
		}
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func formatFlag(usage string, longest int) string {
	return strings.ReplaceAll(
		wordwrap.WrapString(usage,
			uint(80-3-longest-3),
		), "\n", "\n\t")
}
