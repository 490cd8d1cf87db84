package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			s := c.app.Settings()
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "cache:    %s\n", s.CacheDir)
			_, _ = fmt.Fprintf(out, "registry: %s\n", s.Registry)
			_, _ = fmt.Fprintf(out, "timeout:  %s\n", s.Timeout)
			_, _ = fmt.Fprintf(out, "config:   %s\n", s.ConfigDir)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Persist a setting (cache, registry or timeout)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"cache", "registry", "timeout"},
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.SetConfig(args[0], args[1])
		},
	})

	return cmd
}
