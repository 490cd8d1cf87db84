package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the artifact cache and the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repository, _ := cmd.Flags().GetBool("repository")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}

			switch {
			case all:
				opts.Cache = true
				opts.Repository = true
			case repository:
				opts.Repository = true
			default:
				// Default behavior: clean the artifact cache
				opts.Cache = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("repository", "r", false, "Forget every recorded package version")
	cmd.Flags().BoolP("all", "a", false, "Clean the artifact cache and the repository")

	return cmd
}
