// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dockercmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/invowk/dockercmd/pkg/cmdopts"
)

func TestExecutor_TerminatingSignal(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModeInherit, ModeCapture} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			recorder := NewMockCommandRecorder()
			recorder.Signal = "KILL"
			e := newMockExecutor(t, recorder)

			res := <-e.Execute(context.Background(), Request{
				SubCommand: SubCommandAttach,
				Options:    cmdopts.New().Arg("web"),
				Mode:       mode,
			})

			var failed *CommandFailedError
			if !errors.As(res.Err, &failed) {
				t.Fatalf("expected *CommandFailedError, got: %v", res.Err)
			}
			if res.Signal != "SIGKILL" || failed.Signal != "SIGKILL" {
				t.Errorf("Signal = %q / %q, want SIGKILL", res.Signal, failed.Signal)
			}
			if res.ExitCode != -1 {
				t.Errorf("ExitCode = %d, want -1 for a signalled child", res.ExitCode)
			}
			if want := "command failed with code/signal SIGKILL"; res.Err.Error() != want {
				t.Errorf("error = %q, want %q", res.Err.Error(), want)
			}
		})
	}
}

// readyWriter closes ready on the first write it receives.
type readyWriter struct {
	once  sync.Once
	ready chan struct{}
}

func newReadyWriter() *readyWriter {
	return &readyWriter{ready: make(chan struct{})}
}

func (w *readyWriter) Write(p []byte) (int, error) {
	w.once.Do(func() { close(w.ready) })
	return len(p), nil
}

// startInterruptible runs the helper in inherit mode and cancels ctx once it
// reports readiness.
func startInterruptible(t *testing.T, recorder *MockCommandRecorder, stderr *bytes.Buffer, opts ...ExecutorOption) Result {
	t.Helper()

	ready := newReadyWriter()
	all := append([]ExecutorOption{
		WithExecCommand(recorder.ContextCommandFunc(t)),
		WithStdio(nil, ready, stderr),
	}, opts...)
	e := NewExecutor(all...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := e.Execute(ctx, Request{
		SubCommand: SubCommandRun,
		Options:    cmdopts.New().SetString(ImageOptionKey, "alpine").Arg("sleep", "60"),
	})

	select {
	case <-ready.ready:
	case res := <-ch:
		t.Fatalf("helper exited before becoming ready: %v", res.Err)
	case <-time.After(10 * time.Second):
		t.Fatal("helper never became ready")
	}
	cancel()

	select {
	case res := <-ch:
		return res
	case <-time.After(20 * time.Second):
		t.Fatal("no result after cancellation")
		return Result{}
	}
}

func TestExecutor_CancelInterruptsChild(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.AwaitInterrupt = "exit"
	var stderr bytes.Buffer

	res := startInterruptible(t, recorder, &stderr)

	if res.Signal != "" {
		t.Fatalf("child was terminated by %s, want it to handle the interrupt", res.Signal)
	}
	if res.ExitCode != 130 {
		t.Errorf("ExitCode = %d, want the child's own 130", res.ExitCode)
	}
	if !strings.Contains(stderr.String(), "interrupted") {
		t.Errorf("child did not see SIGINT, stderr = %q", stderr.String())
	}
	var failed *CommandFailedError
	if !errors.As(res.Err, &failed) || failed.ExitCode != 130 {
		t.Errorf("expected *CommandFailedError with code 130, got: %v", res.Err)
	}
}

func TestExecutor_CancelKillsAfterWaitDelay(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.AwaitInterrupt = "ignore"
	var stderr bytes.Buffer

	start := time.Now()
	res := startInterruptible(t, recorder, &stderr, WithWaitDelay(200*time.Millisecond))

	if res.Signal != "SIGKILL" {
		t.Errorf("Signal = %q, want SIGKILL once the wait delay passes", res.Signal)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
	if elapsed := time.Since(start); elapsed > 15*time.Second {
		t.Errorf("kill took %s, wait delay was not applied", elapsed)
	}
}
