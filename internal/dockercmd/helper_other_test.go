// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dockercmd

import "os"

// killSelf falls back to a plain failure where signals cannot be raised.
func killSelf(_ string) {
	os.Exit(1)
}

// awaitInterrupt is unused where SIGINT cannot be delivered to a child.
func awaitInterrupt(_ string) {}
