package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [dir]",
		Short: "Resolve dependencies and write depot.shared.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Restore(cmd.Context(), projectDir(args))
		},
	}
}

func projectDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
