// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/dockercmd/internal/config"
	"github.com/invowk/dockercmd/internal/dockercmd"
	"github.com/invowk/dockercmd/internal/issue"
	"github.com/invowk/dockercmd/pkg/cmdopts"
	"github.com/invowk/dockercmd/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootFlags holds the persistent flags shared by every sub-command.
	rootFlags struct {
		globals []string
		binary  string
		cfgFile string
		debug   bool
		verbose bool
	}

	// settings is the per-invocation merge of flags and configuration.
	settings struct {
		binary  string
		debug   bool
		verbose bool
		capture bool
		global  *cmdopts.OptionSet
	}
)

// NewRootCommand builds the dockercmd command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dockercmd",
		Short: "Run docker sub-commands from structured options",
		Long: TitleStyle.Render("dockercmd") + SubtitleStyle.Render(" - Run docker sub-commands from structured options") + `

dockercmd turns key/value options into a docker command line and runs it,
either attached to your terminal or with its output captured.

` + SubtitleStyle.Render("Examples:") + `
  dockercmd ps -o a                         docker ps -a
  dockercmd run -o rm --image alpine -- ls  docker run --rm alpine ls
  dockercmd -g host=tcp://10.0.0.1:2375 images -o q --capture
  dockercmd build -o tag=app:1 -o tag=app:latest --dry-run -- .`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringArrayVarP(&flags.globals, "global", "g", nil, "global option placed before the sub-command, as key or key=value (repeatable)")
	pf.StringVar(&flags.binary, "binary", "", "container CLI to run (default from config, then \"docker\")")
	pf.StringVar(&flags.cfgFile, "config", "", "config file (default is $HOME/.config/dockercmd/config.cue)")
	pf.BoolVar(&flags.debug, "debug", false, "trace every spawned command on stderr")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose error output")

	for _, sub := range dockercmd.SubCommands() {
		rootCmd.AddCommand(newDockerCommand(app, flags, sub))
	}
	rootCmd.AddCommand(newCommandsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the child's status. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code.OrFailure()))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// resolve merges configuration with the persistent flags. Flags win.
func (a *App) resolve(ctx context.Context, flags *rootFlags) (*settings, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.cfgFile})
	if err != nil {
		a.renderIssue(issue.ConfigLoadFailedId)
		return nil, &ExitError{Code: types.ExitFailure, Err: err}
	}

	global, err := cfg.GlobalOptionSet()
	if err != nil {
		return nil, &ExitError{Code: types.ExitFailure, Err: err}
	}
	overrides, err := cmdopts.ParseAssignments(flags.globals)
	if err != nil {
		a.renderIssue(issue.InvalidOptionsId)
		return nil, &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("--global: %w", err)}
	}
	for _, opt := range overrides.Options() {
		global.Set(opt.Name, opt.Values...)
	}

	s := &settings{
		binary:  cfg.ResolvedBinary(),
		debug:   cfg.Debug || flags.debug,
		verbose: flags.verbose,
		capture: cfg.Capture,
		global:  global,
	}
	if flags.binary != "" {
		s.binary = flags.binary
	}
	return s, nil
}
