// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for the dockercmd CLI.
//
// ActionableError carries the failed operation, the resource involved, and
// suggestions for fixing the problem. Issue is a catalog entry with Markdown
// guidance, rendered in the terminal with glamour.
package issue
