package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newEmbedCmd() *cobra.Command {
	var input, output, name string

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Convert a SPIR-V module into a C header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Embed(cmd.Context(), input, output, name)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "SPIR-V module to embed")
	cmd.Flags().StringVar(&output, "output", "", "Header to write")
	cmd.Flags().StringVar(&name, "name", "", "Name of the uint32_t array")
	for _, flag := range []string{"input", "output", "name"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}
