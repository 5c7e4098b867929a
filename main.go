// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/dockercmd/cmd/dockercmd"

func main() {
	cmd.Execute()
}
