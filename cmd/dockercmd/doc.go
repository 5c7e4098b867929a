// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the dockercmd command line interface.
//
// Every supported docker sub-command is exposed as a cobra command that
// builds one request from its flags and hands it to the executor in
// internal/dockercmd.
package cmd
