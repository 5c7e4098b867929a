// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/invowk/dockercmd/internal/config"
	"github.com/invowk/dockercmd/internal/dockercmd"
	"github.com/invowk/dockercmd/internal/issue"
	"github.com/invowk/dockercmd/pkg/types"
)

// daemonUnreachableMarkers appear in the docker and podman CLIs' stderr when
// the daemon socket cannot be reached.
var daemonUnreachableMarkers = []string{
	"Cannot connect to the Docker daemon",
	"Is the docker daemon running",
	"unable to connect to Podman",
}

// renderIssue writes the catalog guidance for id to stderr.
func (a *App) renderIssue(id issue.Id) {
	i := issue.Get(id)
	if i == nil {
		return
	}
	rendered, err := i.Render(a.issueStyle)
	if err != nil {
		rendered = string(i.MarkdownMsg())
	}
	fmt.Fprint(a.stderr, rendered)
}

// classifyResult picks the catalog entry that explains a failed result, or
// 0 when none applies.
func classifyResult(res dockercmd.Result) issue.Id {
	var failed *dockercmd.CommandFailedError
	switch {
	case errors.Is(res.Err, dockercmd.ErrUnknownSubCommand):
		return issue.UnknownSubCommandId
	case errors.Is(res.Err, dockercmd.ErrInvalidRequest):
		return issue.InvalidOptionsId
	case errors.As(res.Err, &failed):
		for _, marker := range daemonUnreachableMarkers {
			if strings.Contains(failed.Stderr, marker) {
				return issue.DaemonUnreachableId
			}
		}
		return 0
	case errors.Is(res.Err, exec.ErrNotFound), errors.Is(res.Err, fs.ErrNotExist):
		return issue.BinaryNotFoundId
	case errors.Is(res.Err, fs.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// commandError renders guidance for a failed result and converts it into an
// ExitError carrying the child's status.
func (a *App) commandError(s *settings, res dockercmd.Result) error {
	id := classifyResult(res)
	if id != 0 {
		a.renderIssue(id)
	}

	err := res.Err
	if id == issue.BinaryNotFoundId || id == issue.PermissionDeniedId {
		ec := issue.NewErrorContext().
			WithOperation("start the container CLI").
			WithResource(s.binary).
			WithSuggestion("Pass --binary or set " + config.BinaryEnvVar)
		if id == issue.BinaryNotFoundId {
			if alt, ok := config.FallbackEngine(config.Engine(s.binary), a.lookPath); ok {
				ec = ec.WithSuggestion(fmt.Sprintf("%s is installed: try --binary %s", alt, alt))
			}
		}
		err = ec.Wrap(res.Err).BuildError()
	}

	var ae *issue.ActionableError
	if s.verbose && errors.As(err, &ae) {
		fmt.Fprintln(a.stderr, ErrorStyle.Render("Error:"), ae.Format(true))
	}

	code := res.ExitCode.OrFailure()
	if errors.Is(res.Err, dockercmd.ErrInvalidRequest) {
		code = types.ExitFailure
	}
	return &ExitError{Code: code, Err: err}
}
