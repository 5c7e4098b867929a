// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/invowk/dockercmd/internal/dockercmd"
	"github.com/invowk/dockercmd/internal/issue"
	"github.com/invowk/dockercmd/pkg/cmdopts"
	"github.com/invowk/dockercmd/pkg/types"
)

type dockerFlags struct {
	opts    []string
	images  []string
	capture bool
	dryRun  bool
}

// newDockerCommand exposes one docker sub-command. Flag parsing stops at the
// first positional argument, so `dockercmd run --image alpine ls -la` passes
// -la through to the container.
func newDockerCommand(app *App, root *rootFlags, sub dockercmd.SubCommand) *cobra.Command {
	df := &dockerFlags{}

	use := sub.String() + " [flags] [args...]"
	cmd := &cobra.Command{
		Use:   use,
		Short: sub.Summary(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocker(cmd, app, root, df, sub, args)
		},
	}

	f := cmd.Flags()
	f.SetInterspersed(false)
	f.StringArrayVarP(&df.opts, "opt", "o", nil, "option for the sub-command, as key or key=value (repeatable)")
	f.BoolVar(&df.capture, "capture", false, "capture the output instead of attaching the terminal")
	f.BoolVar(&df.dryRun, "dry-run", false, "print the command line without running it")
	if sub.TakesImageArg() {
		f.StringArrayVar(&df.images, "image", nil, "image placed before the positional arguments (repeatable)")
	}

	return cmd
}

func runDocker(cmd *cobra.Command, app *App, root *rootFlags, df *dockerFlags, sub dockercmd.SubCommand, args []string) error {
	s, err := app.resolve(cmd.Context(), root)
	if err != nil {
		return err
	}

	opts, err := cmdopts.ParseAssignments(df.opts)
	if err != nil {
		app.renderIssue(issue.InvalidOptionsId)
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("--opt: %w", err)}
	}
	if len(df.images) > 0 {
		opts.AddStrings(dockercmd.ImageOptionKey, df.images...)
	}
	opts.Arg(args...)

	req := dockercmd.Request{
		SubCommand: sub,
		Options:    opts,
		Global:     s.global,
		Mode:       dockercmd.ModeInherit,
	}
	if df.capture || s.capture {
		req.Mode = dockercmd.ModeCapture
	}

	executor := app.newExecutor(s)

	if df.dryRun {
		argv, _, err := executor.BuildArgv(req)
		if err != nil {
			return app.commandError(s, dockercmd.Result{Err: err, ExitCode: types.ExitFailure})
		}
		fmt.Fprintln(app.stdout, dockercmd.ShellQuote(argv))
		return nil
	}

	res := <-executor.Execute(cmd.Context(), req)
	if res.Output != "" {
		_, _ = io.WriteString(app.stdout, res.Output)
	}
	if res.Failed() {
		return app.commandError(s, res)
	}
	return nil
}
