// Package commands implements the CLI commands for shaderbuild.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/shaderbuild/internal/app"
	"go.trai.ch/shaderbuild/internal/build"
	"go.trai.ch/shaderbuild/internal/core/domain"
)

// CLI represents the command line interface for shaderbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	SetVerbose(enable bool)
	LoadConfig(path string, required bool) (*domain.BuildOptions, error)
	Build(ctx context.Context, opts domain.BuildOptions) error
	Watch(ctx context.Context, opts domain.BuildOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Embed(ctx context.Context, input, output, name string) error
	CompileWGSL(ctx context.Context, input, output string, debug bool) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	flags := &buildFlags{}
	rootCmd := &cobra.Command{
		Use:           "shaderbuild",
		Short:         "Compile GLSL, Slang and WGSL shaders to SPIR-V",
		Long:          "Compiles every shader below the input directory whose outputs are out of date.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.buildOptions(cmd, flags)
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), opts)
		},
	}
	flags.register(rootCmd)

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newEmbedCmd())
	rootCmd.AddCommand(c.newWGSLCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Single-dash long flags are
// rewritten to their double-dash form first.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(NormalizeArgs(args))
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
