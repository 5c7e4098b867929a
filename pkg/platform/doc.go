// SPDX-License-Identifier: MPL-2.0

// Package platform detects host-specific conditions that change how the
// container CLI is located and spawned.
package platform
