// SPDX-License-Identifier: MPL-2.0

// These tests drive a real container engine. testcontainers-go is used only to
// confirm that a daemon is reachable.
package dockercmd

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/testcontainers/testcontainers-go"

	"github.com/invowk/dockercmd/internal/testutil"
	"github.com/invowk/dockercmd/pkg/cmdopts"
)

// checkTestcontainersAvailable safely checks if testcontainers can reach a daemon.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

func TestExecutor_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath(DefaultBinary); err != nil {
		t.Skipf("skipping integration test: %s not in PATH", DefaultBinary)
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping integration test: docker daemon not reachable")
	}

	sem := testutil.ContainerSemaphore()
	sem <- struct{}{}
	defer func() { <-sem }()

	e := NewExecutor()
	ctx := context.Background()

	t.Run("version captured", func(t *testing.T) {
		out, err := e.Run(ctx, Request{
			SubCommand: SubCommandVersion,
			Options:    cmdopts.New().SetString("format", "{{.Server.Version}}").Switch(CaptureOptionKey),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(out) == "" {
			t.Error("expected a server version")
		}
	})

	t.Run("missing image reports daemon error", func(t *testing.T) {
		_, err := e.Run(ctx, Request{
			SubCommand: SubCommandRmi,
			Options:    cmdopts.New().SetString("image", "dockercmd-does-not-exist:never"),
			Mode:       ModeCapture,
		})
		var failed *CommandFailedError
		if !errors.As(err, &failed) {
			t.Fatalf("expected *CommandFailedError, got: %v", err)
		}
		if failed.Stderr == "" || !strings.HasSuffix(err.Error(), "(result=1)") {
			t.Errorf("error = %q, want daemon text with (result=1)", err.Error())
		}
	})
}
