// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os/exec"
	"testing"
)

func fakeLookPath(installed ...string) LookPathFunc {
	return func(file string) (string, error) {
		for _, name := range installed {
			if name == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestFallbackEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		preferred Engine
		installed []string
		want      Engine
		wantOK    bool
	}{
		{"docker missing, podman installed", EngineDocker, []string{"podman"}, EnginePodman, true},
		{"podman missing, docker installed", EnginePodman, []string{"docker"}, EngineDocker, true},
		{"both installed", EngineDocker, []string{"docker", "podman"}, EnginePodman, true},
		{"nothing installed", EngineDocker, nil, "", false},
		{"only the preferred one", EnginePodman, []string{"podman"}, "", false},
		{"custom binary", Engine("nerdctl"), []string{"docker"}, EngineDocker, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := FallbackEngine(tt.preferred, fakeLookPath(tt.installed...))
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FallbackEngine(%s) = (%q, %v), want (%q, %v)", tt.preferred, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEngine_Available(t *testing.T) {
	t.Parallel()

	lookPath := fakeLookPath("podman")
	if !EnginePodman.Available(lookPath) {
		t.Error("podman should be available")
	}
	if EngineDocker.Available(lookPath) {
		t.Error("docker should not be available")
	}
}
