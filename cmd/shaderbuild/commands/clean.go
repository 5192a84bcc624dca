package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shaderbuild/internal/app"
	"go.trai.ch/shaderbuild/internal/core/domain"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	var (
		output string
		config string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build stamps and, with --all, compiled shaders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("output") {
				cfg, err := c.app.LoadConfig(config, cmd.Flags().Changed("config"))
				if err != nil {
					return err
				}
				if cfg != nil {
					output = cfg.Output
				}
			}
			return c.app.Clean(cmd.Context(), app.CleanOptions{Output: output, All: all})
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output directory to clean")
	cmd.Flags().StringVarP(&config, "config", "c", domain.ConfigFileName, "Path to configuration file")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also remove .spv, .h and .d files")

	return cmd
}
