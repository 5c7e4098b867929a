// SPDX-License-Identifier: MPL-2.0

package dockercmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/dockercmd/pkg/cmdopts"
	"github.com/invowk/dockercmd/pkg/types"
)

const (
	// DefaultBinary is the executable looked up in PATH when none is configured.
	DefaultBinary = "docker"

	// CaptureOptionKey is the reserved command option selecting ModeCapture.
	// It is always removed before translation.
	CaptureOptionKey = "captureOutput"

	// ImageOptionKey is the command option holding the image reference for
	// sub-commands where TakesImageArg is true.
	ImageOptionKey = "image"

	// DefaultWaitDelay bounds how long a cancelled child may run after its
	// interrupt before it is killed.
	DefaultWaitDelay = 10 * time.Second
)

// ErrImageValue is returned when the image option carries no literal value.
var ErrImageValue = errors.New("image option requires a value")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// ExecutorOption configures an Executor.
	ExecutorOption func(*Executor)

	// Handler runs one fixed sub-command.
	Handler func(ctx context.Context, opts, global *cmdopts.OptionSet) <-chan Result

	// Request describes one command execution. Nil option sets are treated as empty.
	// The executor never modifies the caller's option sets.
	Request struct {
		SubCommand SubCommand
		Options    *cmdopts.OptionSet
		Global     *cmdopts.OptionSet
		// Mode is the requested mode. A truthy CaptureOptionKey in Options also
		// selects ModeCapture.
		Mode Mode
	}

	// Executor builds argument vectors and runs the docker CLI. It holds no
	// per-call state and is safe for concurrent use.
	Executor struct {
		binary      string
		execCommand ExecCommandFunc
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer
		env         []string
		hostSpawn   []string
		waitDelay   time.Duration
		logger      *log.Logger
		debug       bool
	}
)

// --- Option Functions ---

// WithBinary sets the executable name or path. Names without a separator are
// resolved through PATH.
func WithBinary(binary string) ExecutorOption {
	return func(e *Executor) {
		if binary != "" {
			e.binary = binary
		}
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) ExecutorOption {
	return func(e *Executor) {
		e.execCommand = fn
	}
}

// WithStdio sets the streams shared with the child in ModeInherit.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.stdin, e.stdout, e.stderr = stdin, stdout, stderr
	}
}

// WithEnv appends KEY=VALUE pairs to the environment inherited by the child.
func WithEnv(env ...string) ExecutorOption {
	return func(e *Executor) {
		e.env = append(e.env, env...)
	}
}

// WithHostSpawn runs the binary through a host spawn command, such as
// "flatpak-spawn --host" inside a Flatpak sandbox. Result.Argv is unaffected.
func WithHostSpawn(prefix ...string) ExecutorOption {
	return func(e *Executor) {
		e.hostSpawn = slices.Clone(prefix)
	}
}

// WithWaitDelay sets how long a cancelled child may keep running after its
// interrupt. Zero waits indefinitely.
func WithWaitDelay(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.waitDelay = d
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *log.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithDebug enables a trace record for every execution.
func WithDebug(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.debug = enabled
	}
}

// --- Constructor ---

// NewExecutor creates an executor for DefaultBinary with the process's own stdio.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		binary:      DefaultBinary,
		execCommand: exec.CommandContext,
		waitDelay:   DefaultWaitDelay,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "dockercmd",
			Level:  log.DebugLevel,
		})
	}
	return e
}

// Binary returns the configured executable.
func (e *Executor) Binary() string {
	return e.binary
}

// --- Argument Builders ---

// BuildArgv validates the request and returns the argument vector and the
// resolved mode without spawning anything.
//
// Generated command: <binary> [global options] <sub-command> [options] [image] [args...]
func (e *Executor) BuildArgv(req Request) ([]string, Mode, error) {
	prepared, mode, err := e.prepare(req)
	if err != nil {
		return nil, mode, err
	}
	return e.argv(req.SubCommand, prepared, req.Global), mode, nil
}

// prepare validates req and returns a copy of its command options with the
// reserved keys consumed.
func (e *Executor) prepare(req Request) (*cmdopts.OptionSet, Mode, error) {
	var errs []error
	if err := req.SubCommand.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := req.Global.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("global options: %w", err))
	}

	opts := req.Options.Clone()
	mode := req.Mode
	if vals, ok := opts.Take(CaptureOptionKey); ok && anyTruthy(vals) {
		mode = ModeCapture
	}

	if req.SubCommand.TakesImageArg() {
		if err := moveImageToArgs(opts); err != nil {
			errs = append(errs, err)
		}
	}

	if err := opts.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("command options: %w", err))
	}

	if len(errs) > 0 {
		return nil, mode, &InvalidRequestError{SubCommand: req.SubCommand, FieldErrs: errs}
	}
	return opts, mode, nil
}

func (e *Executor) argv(sub SubCommand, opts, global *cmdopts.OptionSet) []string {
	args := []string{e.binary}
	args = cmdopts.AppendTokens(args, global)
	args = append(args, string(sub))
	return cmdopts.AppendTokens(args, opts)
}

// moveImageToArgs removes the image option and puts its values, in order, in
// front of the positional arguments. An image option holding only empty
// values is left in place and emitted as a regular flag.
func moveImageToArgs(opts *cmdopts.OptionSet) error {
	vals, ok := opts.Get(ImageOptionKey)
	if !ok || !slices.ContainsFunc(vals, isImageRef) {
		return nil
	}
	opts.Take(ImageOptionKey)

	images := make([]string, 0, len(vals))
	for _, v := range vals {
		if !isImageRef(v) {
			continue
		}
		if !v.HasLiteral() {
			return ErrImageValue
		}
		images = append(images, v.Literal())
	}
	opts.Args = slices.Concat(images, opts.Args)
	return nil
}

// isImageRef reports whether v names an image to insert. Switches count so
// that BuildArgv can reject them.
func isImageRef(v cmdopts.Value) bool {
	return !v.Omitted() && (!v.HasLiteral() || v.Literal() != "")
}

func anyTruthy(vals []cmdopts.Value) bool {
	return slices.ContainsFunc(vals, cmdopts.Value.Truthy)
}

// --- Command Execution ---

// Execute runs the request in the background. Exactly one Result is sent on the
// returned channel, which is then closed.
//
// There is no timeout. Cancelling ctx interrupts the child so the container CLI
// can clean up; it is killed if still running after the wait delay.
func (e *Executor) Execute(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- e.run(ctx, req)
	}()
	return ch
}

// ExecuteFunc runs the request in the background and calls fn once with the
// captured output and the error. fn runs on a goroutine owned by the executor.
func (e *Executor) ExecuteFunc(ctx context.Context, req Request, fn func(output string, err error)) {
	go func() {
		res := e.run(ctx, req)
		fn(res.Output, res.Err)
	}()
}

// Run executes the request and waits for it.
func (e *Executor) Run(ctx context.Context, req Request) (string, error) {
	res := <-e.Execute(ctx, req)
	return res.Output, res.Err
}

// Command returns the handler for sub. Handlers for unknown sub-commands deliver
// an *InvalidRequestError.
func (e *Executor) Command(sub SubCommand) Handler {
	return func(ctx context.Context, opts, global *cmdopts.OptionSet) <-chan Result {
		return e.Execute(ctx, Request{SubCommand: sub, Options: opts, Global: global})
	}
}

// CreateCommand creates an exec.Cmd for argv with the host spawn prefix and
// environment overrides applied. argv[0] is the binary.
func (e *Executor) CreateCommand(ctx context.Context, argv []string) *exec.Cmd {
	if len(e.hostSpawn) > 0 {
		argv = append(slices.Clone(e.hostSpawn), argv...)
	}
	cmd := e.execCommand(ctx, argv[0], argv[1:]...)
	if len(e.env) > 0 {
		cmd.Env = append(cmd.Environ(), e.env...)
	}
	// Cancel is only set by exec.CommandContext; commands built without a
	// context must keep it nil.
	if cmd.Cancel != nil {
		cmd.Cancel = func() error { return interruptProcess(cmd.Process) }
		cmd.WaitDelay = e.waitDelay
	}
	return cmd
}

func (e *Executor) run(ctx context.Context, req Request) Result {
	opts, mode, err := e.prepare(req)
	if err != nil {
		return Result{Err: err}
	}
	argv := e.argv(req.SubCommand, opts, req.Global)

	if e.debug {
		e.trace(req, opts, argv, mode)
	}

	cmd := e.CreateCommand(ctx, argv)
	var stdout, stderr bytes.Buffer
	switch mode {
	case ModeCapture:
		cmd.Stdin = nil
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	default:
		cmd.Stdin = e.stdin
		cmd.Stdout = e.stdout
		cmd.Stderr = e.stderr
	}

	if err := cmd.Start(); err != nil {
		return Result{Argv: argv, ExitCode: types.ExitFailure, Err: err}
	}
	waitErr := cmd.Wait()

	res := Result{Argv: argv, Output: stdout.String()}
	if cmd.ProcessState == nil {
		res.ExitCode = types.ExitFailure
		res.Err = waitErr
		return res
	}

	res.ExitCode = types.ExitCode(cmd.ProcessState.ExitCode())
	res.Signal = exitSignal(cmd.ProcessState)
	if res.ExitCode.IsSuccess() && res.Signal == "" {
		// A clean exit can still report a stdio copy error.
		res.Err = waitErr
		return res
	}

	failure := &CommandFailedError{
		SubCommand: req.SubCommand,
		ExitCode:   res.ExitCode,
		Signal:     res.Signal,
	}
	if mode == ModeCapture {
		failure.Stderr = flattenStderr(stderr.String())
	}
	res.Err = failure
	return res
}

// flattenStderr removes every newline and trims surrounding whitespace.
func flattenStderr(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", ""))
}
