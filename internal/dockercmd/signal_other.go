// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dockercmd

import "os"

// interruptProcess kills the child; os.Interrupt cannot be sent here.
func interruptProcess(p *os.Process) error {
	return p.Kill()
}

// exitSignal always returns "" on platforms without POSIX wait statuses.
func exitSignal(_ *os.ProcessState) string {
	return ""
}
