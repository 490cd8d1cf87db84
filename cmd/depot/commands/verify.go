package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id> [version]",
		Short: "Check cached artifacts against their recorded digests",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, version := idAndVersion(args)
			return c.app.Verify(cmd.Context(), id, version)
		},
	}
}

func idAndVersion(args []string) (string, string) {
	if len(args) == 2 {
		return args[0], args[1]
	}
	return args[0], ""
}
