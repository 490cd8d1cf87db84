package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [dir]",
		Short: "Record the package and stage it into the local cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			binary, _ := cmd.Flags().GetString("binary")
			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				return c.app.Watch(cmd.Context(), projectDir(args), binary)
			}
			return c.app.Publish(cmd.Context(), projectDir(args), binary)
		},
	}
	cmd.Flags().StringP("binary", "b", "", "Path to the built library; omit for header-only packages")
	cmd.Flags().BoolP("watch", "w", false, "Publish again whenever the package changes")
	return cmd
}
