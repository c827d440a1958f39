package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/slsfw/cmd/slsfw/handlers"
	"github.com/imamik/slsfw/internal/config"
)

// Render returns the render command, which prints the normalized inputs
// without deploying anything.
func Render(flags *config.Settings) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the normalized inputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Render(cmd.Context(), *flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}
