// SPDX-License-Identifier: MPL-2.0

// Package dockercmd runs docker CLI sub-commands described by structured options.
//
// An Executor turns a Request (sub-command, command options, global options, mode)
// into an argument vector:
//
//	<binary> <global options...> <sub-command> <command options...> <positional args...>
//
// and spawns the binary once per request. Two execution modes exist: ModeInherit
// binds the child to the executor's standard streams, ModeCapture buffers the
// child's stdout and stderr and reports them in the Result.
//
// Every Execute call delivers exactly one Result on its channel. A spawn failure is
// reported as the error returned by exec.Cmd.Start. A non-zero exit or a
// terminating signal is reported as *CommandFailedError.
package dockercmd
