// SPDX-License-Identifier: MPL-2.0

package dockercmd

import (
	"errors"
	"fmt"

	"github.com/invowk/dockercmd/pkg/types"
)

const (
	// ModeInherit shares the executor's standard streams with the child.
	ModeInherit Mode = iota
	// ModeCapture buffers the child's stdout and stderr.
	ModeCapture
)

var (
	// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
	ErrCommandFailed = errors.New("command failed")

	// ErrInvalidRequest is the sentinel error wrapped by InvalidRequestError.
	ErrInvalidRequest = errors.New("invalid request")
)

type (
	// Mode selects how the child's standard streams are handled.
	Mode uint8

	// Result is the outcome of one command execution.
	Result struct {
		// Argv is the full argument vector, binary first. Empty when the request
		// was rejected before spawning.
		Argv []string
		// Output is the captured stdout in ModeCapture, untrimmed. It is also set
		// when the command failed.
		Output string
		// ExitCode is the child's exit status, or -1 if it was terminated by a signal.
		ExitCode types.ExitCode
		// Signal names the terminating signal (e.g. "SIGKILL"), or "".
		Signal string
		// Err is nil on a clean exit.
		Err error
	}

	// CommandFailedError reports a non-zero exit or a terminating signal.
	CommandFailedError struct {
		SubCommand SubCommand
		ExitCode   types.ExitCode
		Signal     string
		// Stderr is the captured error stream with newlines removed and surrounding
		// whitespace trimmed. Always empty in ModeInherit.
		Stderr string
	}

	// InvalidRequestError is returned when a request is rejected before spawning.
	InvalidRequestError struct {
		SubCommand SubCommand
		FieldErrs  []error
	}
)

// String returns "inherit" or "capture".
func (m Mode) String() string {
	switch m {
	case ModeInherit:
		return "inherit"
	case ModeCapture:
		return "capture"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Failed reports whether the result carries an error.
func (r Result) Failed() bool { return r.Err != nil }

// Status returns the exit code, or the signal name when the child was signalled.
func (e *CommandFailedError) Status() string {
	if e.Signal != "" {
		return e.Signal
	}
	return e.ExitCode.String()
}

// Error implements the error interface. The child's own error text is preferred
// when it was captured.
func (e *CommandFailedError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s (result=%s)", e.Stderr, e.Status())
	}
	return "command failed with code/signal " + e.Status()
}

// Unwrap returns ErrCommandFailed for errors.Is() compatibility.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %q request: %v", e.SubCommand, errors.Join(e.FieldErrs...))
}

// Unwrap returns ErrInvalidRequest and the field errors.
func (e *InvalidRequestError) Unwrap() []error {
	return append([]error{ErrInvalidRequest}, e.FieldErrs...)
}
