// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"slices"
	"sync"
)

const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox.
	SandboxSnap SandboxType = "snap"

	flatpakInfoPath = "/.flatpak-info"
)

// SandboxType identifies the application sandbox the process runs in, if any.
type SandboxType string

// detectOnce caches detection for the process lifetime. detectSandboxFrom
// must not panic: sync.OnceValue re-panics on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// DetectSandbox returns the sandbox the current process runs in. Flatpak is
// recognized by /.flatpak-info and Snap by SNAP_NAME.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostSpawnPrefix returns the words to place before a host command so it
// runs outside the sandbox, or nil when no such command exists. Snap has
// none: a snap reaches docker through its docker interface plug.
func HostSpawnPrefix(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"flatpak-spawn", "--host"}
	default:
		return nil
	}
}

// DetectedHostSpawnPrefix is HostSpawnPrefix for the detected sandbox.
func DetectedHostSpawnPrefix() []string {
	return slices.Clone(HostSpawnPrefix(DetectSandbox()))
}

func detectSandboxFrom(getenv func(string) string, stat func(string) error) SandboxType {
	// Flatpak takes precedence.
	if stat(flatpakInfoPath) == nil {
		return SandboxFlatpak
	}
	if getenv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
