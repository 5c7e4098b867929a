// SPDX-License-Identifier: MPL-2.0

// Package config handles dockercmd configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/dockercmd/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/dockercmd/config.cue on macOS,
// %APPDATA%\dockercmd\config.cue on Windows). Files are validated against the embedded
// config_schema.cue before being merged over the defaults.
package config
