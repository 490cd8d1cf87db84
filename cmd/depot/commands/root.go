// Package commands implements the CLI commands for depot.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/build"
	"go.trai.ch/depot/internal/core/domain"
)

// CLI represents the command line interface for depot.
type CLI struct {
	app     Application
	log     LogConfigurer
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Restore(ctx context.Context, dir string) error
	Publish(ctx context.Context, dir, binary string) error
	Watch(ctx context.Context, dir, binary string) error
	List(ctx context.Context, id string, w io.Writer) error
	Verify(ctx context.Context, id, version string) error
	Remove(ctx context.Context, id, version string) error
	Clean(ctx context.Context, options app.CleanOptions) error
	Settings() domain.Settings
	SetConfig(key, value string) error
}

// LogConfigurer is implemented by loggers that can switch format and verbosity.
type LogConfigurer interface {
	SetJSON(enable bool)
	SetQuiet(enable bool)
}

// New creates a new CLI instance with the given app. log may be nil.
func New(a Application, log LogConfigurer) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depot",
		Short:         "A package manager for native libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Emit log records as JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")

	c := &CLI{
		app:     a,
		log:     log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.log == nil {
			return
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")
		c.log.SetJSON(jsonMode)
		c.log.SetQuiet(quiet)
	}

	rootCmd.AddCommand(c.newRestoreCmd())
	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
