// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"io/fs"
	"slices"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	noFile := func(string) error { return fs.ErrNotExist }
	flatpakFile := func(path string) error {
		if path == flatpakInfoPath {
			return nil
		}
		return fs.ErrNotExist
	}
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name string
		env  map[string]string
		stat func(string) error
		want SandboxType
	}{
		{"none", nil, noFile, SandboxNone},
		{"flatpak", nil, flatpakFile, SandboxFlatpak},
		{"snap", map[string]string{"SNAP_NAME": "dockercmd"}, noFile, SandboxSnap},
		{"flatpak wins over snap", map[string]string{"SNAP_NAME": "dockercmd"}, flatpakFile, SandboxFlatpak},
		{"stat error other than not-exist", nil, func(string) error { return errors.New("eio") }, SandboxNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := detectSandboxFrom(env(tt.env), tt.stat); got != tt.want {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHostSpawnPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		st   SandboxType
		want []string
	}{
		{SandboxNone, nil},
		{SandboxFlatpak, []string{"flatpak-spawn", "--host"}},
		{SandboxSnap, nil},
		{SandboxType("unknown"), nil},
	}
	for _, tt := range tests {
		if got := HostSpawnPrefix(tt.st); !slices.Equal(got, tt.want) {
			t.Errorf("HostSpawnPrefix(%q) = %q, want %q", tt.st, got, tt.want)
		}
	}
}
