package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	flags := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever a shader source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.buildOptions(cmd, flags)
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), opts)
		},
	}
	flags.register(cmd)
	return cmd
}
