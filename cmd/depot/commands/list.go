package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list [id]",
		Aliases: []string{"ls"},
		Short:   "List recorded package versions",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return c.app.List(cmd.Context(), id, cmd.OutOrStdout())
		},
	}
}
