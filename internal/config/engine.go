// SPDX-License-Identifier: MPL-2.0

package config

import "os/exec"

// LookPathFunc resolves an executable name the way exec.LookPath does.
type LookPathFunc func(file string) (string, error)

// Engines returns the supported engines in fallback order.
func Engines() []Engine {
	return []Engine{EngineDocker, EnginePodman}
}

// Available reports whether the engine's CLI can be found on PATH.
func (e Engine) Available(lookPath LookPathFunc) bool {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(string(e))
	return err == nil
}

// FallbackEngine returns the first installed engine other than preferred.
// It reports false when no alternative is installed.
func FallbackEngine(preferred Engine, lookPath LookPathFunc) (Engine, bool) {
	for _, e := range Engines() {
		if e != preferred && e.Available(lookPath) {
			return e, true
		}
	}
	return "", false
}
