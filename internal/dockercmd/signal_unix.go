// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dockercmd

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// interruptProcess asks the child to stop the way a terminal Ctrl-C would.
func interruptProcess(p *os.Process) error {
	return p.Signal(os.Interrupt)
}

// exitSignal returns the name of the signal that terminated the process, or "".
func exitSignal(state *os.ProcessState) string {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return ""
	}
	if name := unix.SignalName(ws.Signal()); name != "" {
		return name
	}
	return ws.Signal().String()
}
