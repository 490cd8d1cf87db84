package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id> [version]",
		Aliases: []string{"rm"},
		Short:   "Remove recorded package versions and their cache entries",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, version := idAndVersion(args)
			return c.app.Remove(cmd.Context(), id, version)
		},
	}
}
