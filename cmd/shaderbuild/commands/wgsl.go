package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWGSLCmd() *cobra.Command {
	var (
		output string
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "wgsl <source>",
		Short: "Compile a WGSL shader to SPIR-V",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CompileWGSL(cmd.Context(), args[0], output, debug)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "SPIR-V module to write")
	cmd.Flags().BoolVar(&debug, "debug", false, "Emit debug information")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
