// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/dockercmd/internal/dockercmd"
)

func newCommandsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the supported docker sub-commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listCommands(app)
			return nil
		},
	}
}

func listCommands(app *App) {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Supported sub-commands"))
	fmt.Fprintln(app.stdout)
	for _, sub := range dockercmd.SubCommands() {
		line := nameColumnStyle.Render(sub.String()) + " " + SubtitleStyle.Render(sub.Summary())
		if sub.TakesImageArg() {
			line += " " + WarningStyle.Render("(--image)")
		}
		fmt.Fprintln(app.stdout, line)
	}
}
