package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/slsfw/cmd/slsfw/handlers"
)

// Init returns the command for interactively creating deployment inputs.
//
// Flags:
//
//	--output, -o: Path to output file (default "serverless.yml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create deployment inputs",
		Long: `Interactively create a serverless.yml.

This command asks about:

  - Framework and function name
  - Regions
  - Runtime, handler and memory size
  - API gateway protocols and CORS
  - An optional custom domain and its DNS record line

Only values that differ from the defaults are written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "serverless.yml", "Output file path")

	return cmd
}
