// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/dockercmd/pkg/cmdopts"
)

const (
	// EngineDocker spawns the docker CLI.
	EngineDocker Engine = "docker"
	// EnginePodman spawns the podman CLI.
	EnginePodman Engine = "podman"

	// DebugEnvVar is scanned for DebugMarker to enable command tracing.
	DebugEnvVar = "DEBUG"
	// DebugMarker enables tracing when it appears anywhere in DebugEnvVar.
	DebugMarker = "dockercmd"
	// BinaryEnvVar overrides the binary key.
	BinaryEnvVar = "DOCKERCMD_BINARY"
)

var (
	// ErrInvalidEngine is returned when an Engine value is not recognized.
	ErrInvalidEngine = errors.New("invalid container engine")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Engine names a supported container CLI.
	Engine string

	// InvalidEngineError is returned when an Engine value is not recognized.
	InvalidEngineError struct {
		Value Engine
	}

	// Config is the resolved dockercmd configuration.
	Config struct {
		// Binary is the executable to spawn. Empty means the engine's name.
		Binary string `json:"binary" mapstructure:"binary"`
		// Engine picks the default binary.
		Engine Engine `json:"engine" mapstructure:"engine"`
		// Capture makes the CLI capture output by default.
		Capture bool `json:"capture" mapstructure:"capture"`
		// Debug enables command tracing.
		Debug bool `json:"debug" mapstructure:"debug"`
		// GlobalOptions are emitted before every sub-command. They bypass
		// Viper because Viper folds key case and flags are case-sensitive.
		GlobalOptions map[string]any `json:"global_options" mapstructure:"-"`
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{Engine: EngineDocker}
}

func (e Engine) String() string { return string(e) }

// Validate returns nil for docker and podman.
func (e Engine) Validate() error {
	switch e {
	case EngineDocker, EnginePodman:
		return nil
	default:
		return &InvalidEngineError{Value: e}
	}
}

func (e *InvalidEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

func (e *InvalidEngineError) Unwrap() error { return ErrInvalidEngine }

// Validate checks the fields CUE cannot see, such as values set through
// the environment.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Engine.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Binary != "" && strings.TrimSpace(c.Binary) == "" {
		errs = append(errs, errors.New("binary must not be whitespace-only"))
	}
	if _, err := cmdopts.FromMap(c.GlobalOptions); err != nil {
		errs = append(errs, fmt.Errorf("global_options: %w", err))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// ResolvedBinary returns Binary, falling back to the engine's name.
func (c *Config) ResolvedBinary() string {
	if c.Binary != "" {
		return c.Binary
	}
	if c.Engine != "" {
		return string(c.Engine)
	}
	return string(EngineDocker)
}

// GlobalOptionSet converts GlobalOptions into an option set.
func (c *Config) GlobalOptionSet() (*cmdopts.OptionSet, error) {
	return cmdopts.FromMap(c.GlobalOptions)
}

// DebugFromEnv reports whether the DEBUG value names dockercmd.
func DebugFromEnv(value string) bool {
	return strings.Contains(value, DebugMarker)
}
