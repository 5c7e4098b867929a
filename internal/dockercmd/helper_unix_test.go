// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dockercmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// killSelf terminates the helper process with the named signal.
func killSelf(name string) {
	sig := syscall.SIGKILL
	if name == "TERM" {
		sig = syscall.SIGTERM
	}
	_ = syscall.Kill(os.Getpid(), sig)
	time.Sleep(time.Second)
}

// awaitInterrupt announces readiness on stdout and blocks until SIGINT.
// In "ignore" mode the interrupt has no effect and only a kill ends the wait.
func awaitInterrupt(mode string) {
	ch := make(chan os.Signal, 1)
	if mode == "ignore" {
		signal.Ignore(os.Interrupt)
	} else {
		signal.Notify(ch, os.Interrupt)
	}
	fmt.Fprintln(os.Stdout, "ready")

	select {
	case <-ch:
		fmt.Fprint(os.Stderr, "interrupted")
		os.Exit(130)
	case <-time.After(30 * time.Second):
	}
}
