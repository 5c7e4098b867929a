// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/dockercmd/internal/issue"
	"github.com/invowk/dockercmd/internal/testutil"
	"github.com/invowk/dockercmd/pkg/cmdopts"
	"github.com/invowk/dockercmd/pkg/platform"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func noEnv(string) string { return "" }

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir(), Getenv: noEnv})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine != EngineDocker || cfg.Binary != "" || cfg.Capture || cfg.Debug {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if got := cfg.ResolvedBinary(); got != "docker" {
		t.Errorf("ResolvedBinary() = %q, want docker", got)
	}
	globals, err := cfg.GlobalOptionSet()
	if err != nil || globals.Len() != 0 {
		t.Errorf("GlobalOptionSet() = %v, %v; want empty", globals, err)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
binary: "/usr/local/bin/docker"
capture: true
global_options: {
	H: "tcp://10.0.0.1:2375"
	D: true
	"log-level": "debug"
}
`)

	cfg, err := Load(context.Background(), LoadOptions{ConfigFilePath: path, Getenv: noEnv})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ResolvedBinary() != "/usr/local/bin/docker" {
		t.Errorf("ResolvedBinary() = %q", cfg.ResolvedBinary())
	}
	if !cfg.Capture {
		t.Error("Capture should be true")
	}

	globals, err := cfg.GlobalOptionSet()
	if err != nil {
		t.Fatalf("GlobalOptionSet() error = %v", err)
	}
	got := cmdopts.Translate(globals)
	want := []string{"-D", "-H", "tcp://10.0.0.1:2375", "--log-level=debug"}
	if !slices.Equal(got, want) {
		t.Errorf("global tokens = %q, want %q", got, want)
	}
}

func TestLoad_EngineSelectsBinary(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `engine: "podman"`)
	cfg, err := Load(context.Background(), LoadOptions{ConfigFilePath: path, Getenv: noEnv})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.ResolvedBinary(); got != "podman" {
		t.Errorf("ResolvedBinary() = %q, want podman", got)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		BinaryEnvVar: "nerdctl",
		DebugEnvVar:  "express:*,dockercmd",
	}
	cfg, err := Load(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
		Getenv:        func(k string) string { return env[k] },
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ResolvedBinary() != "nerdctl" {
		t.Errorf("ResolvedBinary() = %q, want nerdctl", cfg.ResolvedBinary())
	}
	if !cfg.Debug {
		t.Error("Debug should be enabled by the DEBUG marker")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "syntax error", content: `binary: "docker`, want: "config.cue"},
		{name: "unknown engine", content: `engine: "rkt"`, want: "engine"},
		{name: "wrong type", content: `capture: "yes"`, want: "capture"},
		{name: "unknown key", content: `colour: "red"`, want: "colour"},
		{name: "nested list", content: `global_options: {x: [["a"]]}`, want: "global_options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tt.content)
			_, err := Load(context.Background(), LoadOptions{ConfigFilePath: path, Getenv: noEnv})
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := Load(context.Background(), LoadOptions{ConfigFilePath: missing, Getenv: noEnv})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Load() error = %v, want config file not found", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_InvalidBinaryFromEnv(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
		Getenv: func(k string) string {
			if k == BinaryEnvVar {
				return "   "
			}
			return ""
		},
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	in := &Config{
		Binary:  "podman",
		Engine:  EnginePodman,
		Capture: true,
		GlobalOptions: map[string]any{
			"D":         true,
			"log-level": "warn",
			"tlsverify": false,
			"label":     []any{"a", "b"},
		},
	}

	path := writeConfig(t, GenerateCUE(in))
	out, err := Load(context.Background(), LoadOptions{ConfigFilePath: path, Getenv: noEnv})
	if err != nil {
		t.Fatalf("Load(GenerateCUE()) error = %v", err)
	}
	if out.Binary != in.Binary || out.Engine != in.Engine || out.Capture != in.Capture {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	globals, err := out.GlobalOptionSet()
	if err != nil {
		t.Fatalf("GlobalOptionSet() error = %v", err)
	}
	want := []string{"-D", "--label=a", "--label=b", "--log-level=warn"}
	if got := cmdopts.Translate(globals); !slices.Equal(got, want) {
		t.Errorf("global tokens = %q, want %q", got, want)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = %q, %v", path, created)
	}

	if _, created, err = CreateDefaultConfig(); err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v; want existing file kept", created, err)
	}

	cfg, err := Load(context.Background(), LoadOptions{Getenv: noEnv})
	if err != nil {
		t.Fatalf("Load() of generated file error = %v", err)
	}
	if cfg.Engine != EngineDocker {
		t.Errorf("Engine = %q, want docker", cfg.Engine)
	}
}

func TestDebugFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"dockercmd", true},
		{"http,dockercmd,net", true},
		{"docker", false},
		{"*", false},
	}
	for _, tt := range tests {
		if got := DebugFromEnv(tt.value); got != tt.want {
			t.Errorf("DebugFromEnv(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := &Config{Engine: "rkt", GlobalOptions: map[string]any{"-x": true}}
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrInvalidEngine) || !errors.Is(err, cmdopts.ErrInvalidName) {
		t.Errorf("Validate() = %v, want invalid config, engine and option name", err)
	}
	if DefaultConfig().Validate() != nil {
		t.Error("DefaultConfig() should be valid")
	}

	err = (&Config{Engine: EngineDocker, Binary: "  "}).Validate()
	if !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), "binary must not be whitespace-only") {
		t.Errorf("Validate() with blank binary = %v", err)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == platform.Windows || runtime.GOOS == platform.Darwin {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	xdg := t.TempDir()
	defer testutil.MustSetenv(t, "XDG_CONFIG_HOME", xdg)()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}

	defer testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")()
	home := t.TempDir()
	defer testutil.SetHomeDir(t, home)()

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() without XDG = %q, want %q", dir, want)
	}
}
