// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/invowk/dockercmd/internal/config"
	"github.com/invowk/dockercmd/internal/dockercmd"
	"github.com/invowk/dockercmd/pkg/platform"
)

const defaultIssueStyle = "dark"

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App wires CLI services and shared dependencies. Every cobra handler
	// receives an App and never touches os stdio directly.
	App struct {
		Config      ConfigProvider
		execCommand dockercmd.ExecCommandFunc
		hostSpawn   []string
		lookPath    config.LookPathFunc
		issueStyle  string
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// ExecCommand replaces exec.CommandContext, for tests.
		ExecCommand dockercmd.ExecCommandFunc
		// HostSpawn prefixes every spawned command. Nil means detect the
		// sandbox; an empty slice disables the prefix.
		HostSpawn []string
		// LookPath finds installed engines when the binary is missing.
		LookPath config.LookPathFunc
		// IssueStyle is the glamour style used for issue guidance.
		IssueStyle string
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.HostSpawn == nil {
		deps.HostSpawn = platform.DetectedHostSpawnPrefix()
	}
	if deps.LookPath == nil {
		deps.LookPath = exec.LookPath
	}
	if deps.IssueStyle == "" {
		deps.IssueStyle = defaultIssueStyle
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config:      deps.Config,
		execCommand: deps.ExecCommand,
		hostSpawn:   deps.HostSpawn,
		lookPath:    deps.LookPath,
		issueStyle:  deps.IssueStyle,
		stdin:       deps.Stdin,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

// newExecutor builds the executor for one invocation.
func (a *App) newExecutor(s *settings) *dockercmd.Executor {
	opts := []dockercmd.ExecutorOption{
		dockercmd.WithBinary(s.binary),
		dockercmd.WithStdio(a.stdin, a.stdout, a.stderr),
		dockercmd.WithLogger(newLogger(a.stderr, s.debug)),
		dockercmd.WithDebug(s.debug),
		dockercmd.WithHostSpawn(a.hostSpawn...),
	}
	if a.execCommand != nil {
		opts = append(opts, dockercmd.WithExecCommand(a.execCommand))
	}
	return dockercmd.NewExecutor(opts...)
}
